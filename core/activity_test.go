package core

import "testing"

// 权重表是合约：任何改动都必须显式改这里的期望值。
func TestActivityTypeWeight(t *testing.T) {
	tests := []struct {
		typ  ActivityType
		want float64
	}{
		{ActivityPurchase, 10},
		{ActivityAddToCart, 5},
		{ActivitySearch, 3},
		{ActivityClick, 2},
		{ActivityFilterUse, 2},
		{ActivityView, 1},
	}

	var sum float64
	for _, tt := range tests {
		if got := tt.typ.Weight(); got != tt.want {
			t.Errorf("Weight(%s) = %v, want %v", tt.typ, got, tt.want)
		}
		sum += tt.typ.Weight()
	}
	if sum != 23 {
		t.Errorf("sum of all weights = %v, want 23", sum)
	}

	if got := ActivityType("unknown").Weight(); got != 0 {
		t.Errorf("Weight(unknown) = %v, want 0", got)
	}
}

func TestActivityRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  ActivityRecord
		wantErr error
	}{
		{
			name:   "valid view",
			record: ActivityRecord{UserID: "u1", ProductID: "p1", Type: ActivityView},
		},
		{
			name:   "valid search without product",
			record: ActivityRecord{UserID: "u1", Type: ActivitySearch},
		},
		{
			name:    "missing user id",
			record:  ActivityRecord{Type: ActivityView},
			wantErr: ErrLedgerMissingUser,
		},
		{
			name:    "unrecognized type",
			record:  ActivityRecord{UserID: "u1", Type: ActivityType("wishlist")},
			wantErr: ErrLedgerBadType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if err != tt.wantErr {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && !IsInvalidInput(err) {
				t.Errorf("IsInvalidInput(%v) = false, want true", err)
			}
		})
	}
}
