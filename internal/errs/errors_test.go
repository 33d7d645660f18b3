package errs

import "testing"

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{nil, CodeSuccess},
		{ErrNoDevice, CodeNoDevice},
		{ErrUSBUpload, CodeUSBUpload},
		{ErrTimeout, CodeTimeout},
	}

	for _, c := range cases {
		if got := CodeOf(c.err); got != c.want {
			t.Errorf("CodeOf(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestStrerrorStable(t *testing.T) {
	if Strerror(nil) != "Success" {
		t.Fatalf("Strerror(nil) = %q", Strerror(nil))
	}
	if Strerror(ErrPipe) != StrerrorCode(CodePipe) {
		t.Fatalf("Strerror/StrerrorCode mismatch for pipe error")
	}
}

func TestIsPipe(t *testing.T) {
	if !IsPipe(ErrPipe) {
		t.Fatal("expected ErrPipe to be recognised as a pipe error")
	}
	if IsPipe(ErrTimeout) {
		t.Fatal("did not expect ErrTimeout to be recognised as a pipe error")
	}
}
