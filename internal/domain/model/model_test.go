package model

import "testing"

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "pending"},
		{"in progress", OrderStatusInProgress, "in_progress"},
		{"completed", OrderStatusCompleted, "completed"},
		{"cancelled", OrderStatusCancelled, "cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusPending.Terminal() || OrderStatusInProgress.Terminal() {
		t.Fatal("active statuses must not be terminal")
	}
	if !OrderStatusCompleted.Terminal() || !OrderStatusCancelled.Terminal() {
		t.Fatal("completed and cancelled must be terminal")
	}
}

func TestAttachmentKindSingular(t *testing.T) {
	cases := []struct {
		kind     AttachmentKind
		singular bool
	}{
		{AttachmentKindPDF, true},
		{AttachmentKindDocx, true},
		{AttachmentKindImage, true},
		{AttachmentKindOther, false},
	}

	for _, tc := range cases {
		if tc.kind.Singular() != tc.singular {
			t.Fatalf("kind %s: expected singular=%v", tc.kind, tc.singular)
		}
	}
}

func TestPaymentStateValues(t *testing.T) {
	cases := []struct {
		state PaymentState
		value string
	}{
		{PaymentStatePending, "pending"},
		{PaymentStateCompleted, "completed"},
		{PaymentStateFailed, "failed"},
	}

	for _, tc := range cases {
		if string(tc.state) != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.state)
		}
	}
}
