package apperr

import (
	"testing"

	"github.com/pkg/errors"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", Validation("name", "Name is required"), "Name is required"},
		{"rejection verbatim", Rejected(409, "Slug already exists"), "Slug already exists"},
		{"wrapped rejection", errors.Wrap(Rejected(400, "nope"), "update category"), "nope"},
		{"network", Network("list categories", errors.New("dial tcp: refused")), GenericNetworkMessage},
		{"unknown", errors.New("boom"), GenericNetworkMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Fatalf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	err := errors.Wrap(Network("set stock", nil), "commit")
	if !IsNetwork(err) || IsRejection(err) || IsValidation(err) {
		t.Fatalf("misclassified %v", err)
	}
}
