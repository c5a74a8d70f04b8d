package share

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"scishare/internal/models"
)

// fakeQueryStore records the limits it was asked for.
type fakeQueryStore struct {
	lastUserID uuid.UUID
	lastLimit  int
}

func (s *fakeQueryStore) GetSharesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.SharedAbstractWithTitle, error) {
	s.lastUserID = userID
	s.lastLimit = limit
	return nil, nil
}

func (s *fakeQueryStore) GetMostShared(ctx context.Context, limit int) ([]models.ShareCount, error) {
	s.lastLimit = limit
	return nil, nil
}

func TestMyShared_LimitDefaults(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, DefaultHistoryLimit},
		{"negative uses default", -5, DefaultHistoryLimit},
		{"explicit limit kept", 20, 20},
		{"capped at max", 5000, MaxQueryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeQueryStore{}
			q := NewQueries(store)
			userID := uuid.New()

			if _, err := q.MyShared(context.Background(), userID, tt.limit); err != nil {
				t.Fatalf("MyShared returned error: %v", err)
			}
			if store.lastLimit != tt.want {
				t.Errorf("store limit = %d, want %d", store.lastLimit, tt.want)
			}
			if store.lastUserID != userID {
				t.Error("query must be filtered to the calling user")
			}
		})
	}
}

func TestMostShared_LimitDefaults(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, DefaultMostSharedLimit},
		{"negative uses default", -1, DefaultMostSharedLimit},
		{"explicit limit kept", 3, 3},
		{"capped at max", 999, MaxQueryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeQueryStore{}
			q := NewQueries(store)

			if _, err := q.MostShared(context.Background(), tt.limit); err != nil {
				t.Fatalf("MostShared returned error: %v", err)
			}
			if store.lastLimit != tt.want {
				t.Errorf("store limit = %d, want %d", store.lastLimit, tt.want)
			}
		})
	}
}
