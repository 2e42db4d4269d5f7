package account

import (
	"errors"
	"testing"
)

type collaborators struct {
	updateCalls []string
	updateErr   error
	markCalls   int
	markErr     error
}

func (c *collaborators) update(p string) error {
	c.updateCalls = append(c.updateCalls, p)
	return c.updateErr
}

func (c *collaborators) mark() error {
	c.markCalls++
	return c.markErr
}

func TestProcessPasswordChange_TooShort(t *testing.T) {
	c := &collaborators{}
	res := ProcessPasswordChange("short", "short", c.update, c.mark)
	if res.Kind != ValidationError || res.Message != MsgPasswordTooShort {
		t.Fatalf("got %+v want validation error about minimum length", res)
	}
	if len(c.updateCalls) != 0 || c.markCalls != 0 {
		t.Fatal("validation failures must not reach the collaborators")
	}
}

func TestProcessPasswordChange_Mismatch(t *testing.T) {
	c := &collaborators{}
	res := ProcessPasswordChange("longenough", "different", c.update, c.mark)
	if res.Kind != ValidationError || res.Message != MsgPasswordMismatch {
		t.Fatalf("got %+v want mismatch validation error", res)
	}
	if len(c.updateCalls) != 0 || c.markCalls != 0 {
		t.Fatal("validation failures must not reach the collaborators")
	}
}

func TestProcessPasswordChange_LengthCheckedBeforeMismatch(t *testing.T) {
	c := &collaborators{}
	res := ProcessPasswordChange("short", "other", c.update, c.mark)
	if res.Message != MsgPasswordTooShort {
		t.Fatalf("got %q want the length error first", res.Message)
	}
}

func TestProcessPasswordChange_UpdateErrorPropagated(t *testing.T) {
	c := &collaborators{updateErr: errors.New("storage unavailable")}
	res := ProcessPasswordChange("longenough", "longenough", c.update, c.mark)
	if res.Kind != Error || res.Message != "storage unavailable" {
		t.Fatalf("got %+v want error with collaborator message", res)
	}
	if c.markCalls != 0 {
		t.Fatal("markChanged must not run when the password update failed")
	}
}

func TestProcessPasswordChange_EmptyErrorMessageGetsGeneric(t *testing.T) {
	c := &collaborators{updateErr: errors.New("")}
	res := ProcessPasswordChange("longenough", "longenough", c.update, c.mark)
	if res.Kind != Error || res.Message != MsgTryAgainLater {
		t.Fatalf("got %+v want generic retry message", res)
	}
}

func TestProcessPasswordChange_MarkChangedError(t *testing.T) {
	c := &collaborators{markErr: errors.New("flag update failed")}
	res := ProcessPasswordChange("longenough", "longenough", c.update, c.mark)
	if res.Kind != Error || res.Message != "flag update failed" {
		t.Fatalf("got %+v want error from markChanged", res)
	}
	if len(c.updateCalls) != 1 || c.markCalls != 1 {
		t.Fatalf("each collaborator runs at most once: update=%d mark=%d", len(c.updateCalls), c.markCalls)
	}
}

func TestProcessPasswordChange_Success(t *testing.T) {
	c := &collaborators{}
	res := ProcessPasswordChange("longenough", "longenough", c.update, c.mark)
	if res.Kind != Success || res.Message != "" {
		t.Fatalf("got %+v want success", res)
	}
	if len(c.updateCalls) != 1 || c.updateCalls[0] != "longenough" {
		t.Fatalf("update calls: %v", c.updateCalls)
	}
	if c.markCalls != 1 {
		t.Fatalf("markChanged must run exactly once, got %d", c.markCalls)
	}
}
