package processors

import (
	"errors"
	"testing"
)

func TestFlipVerticalMovesTopRowToBottom(t *testing.T) {
	p := NewFlipProcessor()

	src := grayMat(t, 3, 3, 0)
	defer src.Close()
	src.SetUCharAt(0, 1, 200)

	dst, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Close()

	if got := dst.GetUCharAt(2, 1); got != 200 {
		t.Errorf("top-row pixel should end up on the bottom row, got %d", got)
	}
	if got := dst.GetUCharAt(0, 1); got != 0 {
		t.Errorf("top row should be vacated, got %d", got)
	}
}

func TestFlipHorizontalMovesLeftColumnToRight(t *testing.T) {
	p := NewFlipProcessor()
	if err := p.SetParameters(map[string]interface{}{"flip_type": FlipHorizontal}); err != nil {
		t.Fatalf("SetParameters failed: %v", err)
	}

	src := grayMat(t, 3, 3, 0)
	defer src.Close()
	src.SetUCharAt(1, 0, 150)

	dst, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	defer dst.Close()

	if got := dst.GetUCharAt(1, 2); got != 150 {
		t.Errorf("left-column pixel should end up on the right column, got %d", got)
	}
}

func TestFlipTwiceIsIdentity(t *testing.T) {
	for _, flipType := range []int{FlipVertical, FlipHorizontal} {
		p := NewFlipProcessor()
		if err := p.SetParameters(map[string]interface{}{"flip_type": flipType}); err != nil {
			t.Fatalf("SetParameters failed: %v", err)
		}

		src := bgrMat(t, 4, 6, 10, 20, 30)
		src.SetUCharAt3(1, 2, 1, 99)

		once, err := p.Process(src)
		if err != nil {
			t.Fatalf("first Process failed: %v", err)
		}
		twice, err := p.Process(once)
		if err != nil {
			t.Fatalf("second Process failed: %v", err)
		}

		if !matsEqual(src, twice) {
			t.Errorf("double flip with type %d should reproduce the input", flipType)
		}

		src.Close()
		once.Close()
		twice.Close()
	}
}

func TestFlipRejectsUnknownType(t *testing.T) {
	p := NewFlipProcessor()

	err := p.SetParameters(map[string]interface{}{"flip_type": 2})
	if err == nil {
		t.Fatal("flip_type 2 should be rejected")
	}
	var paramErr *ParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("error %T is not a ParameterError", err)
	}
	if got := p.Parameters()["flip_type"]; got != FlipVertical {
		t.Errorf("flip_type = %v after rejected update, want %d", got, FlipVertical)
	}
}
