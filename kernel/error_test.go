package kernel

import "testing"

func TestKernelError(t *testing.T) {
	err := &Error{
		Module:  "console",
		Message: "framebuffer address is not mapped",
	}

	if err.Error() != err.Message {
		t.Fatalf("expected to err.Error() to return %q; got %q", err.Message, err.Error())
	}

	var goErr error = err
	if goErr.Error() != err.Message {
		t.Fatalf("expected *kernel.Error to satisfy the error interface with message %q; got %q", err.Message, goErr.Error())
	}
}
