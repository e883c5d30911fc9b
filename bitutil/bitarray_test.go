package bitutil

import "testing"

func TestBitArrayGetSet(t *testing.T) {
	ba := NewBitArray(33)
	for i := 0; i < 33; i++ {
		if ba.Get(i) {
			t.Errorf("bit %d should not be set", i)
		}
	}
	ba.Set(0)
	ba.Set(31)
	ba.Set(32)
	if !ba.Get(0) || !ba.Get(31) || !ba.Get(32) {
		t.Error("bits should be set")
	}
	if ba.Get(1) || ba.Get(30) {
		t.Error("bits should not be set")
	}
}

func TestBitArrayFlip(t *testing.T) {
	ba := NewBitArray(8)
	ba.Flip(3)
	if !ba.Get(3) {
		t.Error("bit 3 should be set after flip")
	}
	ba.Flip(3)
	if ba.Get(3) {
		t.Error("bit 3 should be unset after double flip")
	}
}

func TestBitArrayFromBools(t *testing.T) {
	ba := NewBitArrayFromBools([]bool{true, false, false, true, true})
	if ba.Size() != 5 {
		t.Fatalf("size = %d, want 5", ba.Size())
	}
	for i, want := range []bool{true, false, false, true, true} {
		if ba.Get(i) != want {
			t.Errorf("bit %d = %v, want %v", i, ba.Get(i), want)
		}
	}
}

func TestBitArrayGetNextSet(t *testing.T) {
	ba := NewBitArray(64)
	ba.Set(10)
	ba.Set(40)
	if got := ba.GetNextSet(0); got != 10 {
		t.Errorf("GetNextSet(0) = %d, want 10", got)
	}
	if got := ba.GetNextSet(10); got != 10 {
		t.Errorf("GetNextSet(10) = %d, want 10", got)
	}
	if got := ba.GetNextSet(11); got != 40 {
		t.Errorf("GetNextSet(11) = %d, want 40", got)
	}
	if got := ba.GetNextSet(41); got != 64 {
		t.Errorf("GetNextSet(41) = %d, want 64", got)
	}
}

func TestBitArrayGetNextUnset(t *testing.T) {
	ba := NewBitArray(8)
	ba.SetRange(0, 8)
	ba.Flip(3) // unset bit 3
	if got := ba.GetNextUnset(0); got != 3 {
		t.Errorf("GetNextUnset(0) = %d, want 3", got)
	}
}

func TestBitArrayReverse(t *testing.T) {
	ba := NewBitArray(8)
	ba.Set(0)
	ba.Set(2)
	ba.Reverse()
	if !ba.Get(5) || !ba.Get(7) {
		t.Error("reversed bits incorrect")
	}
	if ba.Get(0) || ba.Get(2) {
		t.Error("original positions should be unset")
	}
}

func TestBitArrayReverseOddLength(t *testing.T) {
	ba := NewBitArray(45)
	ba.Set(0)
	ba.Set(17)
	ba.Reverse()
	if !ba.Get(44) || !ba.Get(27) {
		t.Error("reversed bits incorrect for non-word-aligned size")
	}
}

func TestBitArrayReverseEmpty(t *testing.T) {
	ba := NewBitArray(0)
	ba.Reverse() // must not panic
	if ba.Size() != 0 {
		t.Errorf("size = %d, want 0", ba.Size())
	}
}

func TestBitArrayClone(t *testing.T) {
	ba := NewBitArray(16)
	ba.Set(5)
	clone := ba.Clone()
	clone.Set(10)
	if ba.Get(10) {
		t.Error("modifying clone should not affect original")
	}
	if !clone.Get(5) || !clone.Get(10) {
		t.Error("clone should have both bits set")
	}
}

func TestBitArrayIsRange(t *testing.T) {
	ba := NewBitArray(16)
	ba.SetRange(4, 12)
	if !ba.IsRange(4, 12, true) {
		t.Error("range [4,12) should be all set")
	}
	if !ba.IsRange(0, 4, false) {
		t.Error("range [0,4) should be all unset")
	}
	if ba.IsRange(0, 8, true) {
		t.Error("range [0,8) should not be all set")
	}
}
