package results

import (
	"errors"
	"testing"
)

func TestMapToHandlerResults(t *testing.T) {
	type payload struct{ Name string }

	t.Run("success maps to the success topic", func(t *testing.T) {
		out := Success(&payload{Name: "ok"}).MapToHandlerResults("topic.success", "topic.failure")
		if len(out) != 1 {
			t.Fatalf("got %d results, want 1", len(out))
		}
		if out[0].Topic != "topic.success" {
			t.Errorf("Topic = %q, want %q", out[0].Topic, "topic.success")
		}
	})

	t.Run("failure maps to the failure topic", func(t *testing.T) {
		out := Failure(&payload{Name: "bad"}, errors.New("cause")).MapToHandlerResults("topic.success", "topic.failure")
		if len(out) != 1 {
			t.Fatalf("got %d results, want 1", len(out))
		}
		if out[0].Topic != "topic.failure" {
			t.Errorf("Topic = %q, want %q", out[0].Topic, "topic.failure")
		}
	})

	t.Run("empty result maps to nothing", func(t *testing.T) {
		out := (OperationResult{}).MapToHandlerResults("topic.success", "topic.failure")
		if out != nil {
			t.Fatalf("got %d results, want none", len(out))
		}
	})
}
