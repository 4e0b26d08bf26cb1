package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestConfiguration(t *testing.T) {
	err := Configuration("cores", "must be positive")
	if err.Code != ErrCodeConfiguration {
		t.Fatalf("expected %s, got %s", ErrCodeConfiguration, err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", err.HTTPStatus)
	}
	if err.Details["field"] != "cores" {
		t.Fatalf("expected field detail, got %v", err.Details)
	}
	if !strings.Contains(err.Error(), "cores") {
		t.Fatalf("message should name the field: %s", err.Error())
	}
}

func TestCyclicDependencyCarriesCycle(t *testing.T) {
	cycle := []string{"A", "B", "C", "A"}
	err := CyclicDependency(cycle)
	if err.Code != ErrCodeCyclicDependency {
		t.Fatalf("unexpected code %s", err.Code)
	}
	got, ok := err.Details["cycle"].([]string)
	if !ok || len(got) != 4 {
		t.Fatalf("expected ordered cycle in details, got %v", err.Details["cycle"])
	}
	if !strings.Contains(err.Message, "A -> B -> C -> A") {
		t.Fatalf("message should render the cycle: %s", err.Message)
	}
}

func TestShapeMismatchMessage(t *testing.T) {
	err := ShapeMismatch("Centroider", 50, 49)
	if err.Details["expected"] != 50 || err.Details["actual"] != 49 {
		t.Fatalf("expected shape details, got %v", err.Details)
	}
	if !strings.Contains(err.Message, "49") || !strings.Contains(err.Message, "50") {
		t.Fatalf("message should carry both lengths: %s", err.Message)
	}
}

func TestComponentExecutionWrapsCause(t *testing.T) {
	cause := fmt.Errorf("missing param %q", "n_acts")
	err := ComponentExecution("Reconstructor", 3, cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause to be unwrappable")
	}
	if err.Details["group"] != 3 {
		t.Fatalf("expected group index in details, got %v", err.Details)
	}

	noGroup := ComponentExecution("Reconstructor", -1, cause)
	if _, ok := noGroup.Details["group"]; ok {
		t.Fatal("group detail should be omitted when unknown")
	}
}

func TestDomainErrorsNotRetryable(t *testing.T) {
	errs := []*AppError{
		Configuration("f", "r"),
		DuplicateName("Cam"),
		MissingDependency("Cal", "Cam"),
		CyclicDependency([]string{"A", "A"}),
		ShapeMismatch("Cam", 1, 2),
		ComponentExecution("Cam", -1, stderrors.New("boom")),
		InvalidState("run", "UNBUILT"),
	}
	for _, e := range errs {
		if e.Retryable {
			t.Errorf("%s should not be retryable", e.Code)
		}
	}
}

func TestIsCodeWalksChain(t *testing.T) {
	inner := ShapeMismatch("Cam", 1, 2)
	outer := ComponentExecution("Cam", 0, inner)

	if !IsCode(outer, ErrCodeShapeMismatch) {
		t.Fatal("expected inner code to be found through the chain")
	}
	if !IsCode(outer, ErrCodeComponentExecution) {
		t.Fatal("expected outer code to match")
	}
	if IsCode(outer, ErrCodeNotFound) {
		t.Fatal("unexpected code match")
	}
	if IsCode(nil, ErrCodeNotFound) {
		t.Fatal("nil error should never match")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", DuplicateName("Cam"))
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeDuplicateName {
		t.Fatalf("expected DuplicateName through wrapping, got %v", appErr)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Fatal("plain error should not convert")
	}
}

func TestToResponse(t *testing.T) {
	err := MissingDependency("Cal", "Cam")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeMissingDependency {
		t.Fatalf("unexpected code %s", resp.Error.Code)
	}
	if resp.Error.Details["dependency"] != "Cam" {
		t.Fatalf("details should survive conversion, got %v", resp.Error.Details)
	}
}
