package video

import "testing"

func TestReleasePoolAddContainsRemove(t *testing.T) {
	p := NewReleasePool()
	x := someTile(0x11)
	if p.Contains(x) {
		t.Fatalf("fresh pool should not contain anything")
	}
	p.Add(x)
	if !p.Contains(x) || p.Len() != 1 {
		t.Fatalf("Add did not register tile")
	}
	p.Remove(x)
	if p.Contains(x) || p.Len() != 0 {
		t.Fatalf("Remove did not retire tile")
	}
}

func TestReleasePoolCloneIsIndependent(t *testing.T) {
	p := NewReleasePool()
	x := someTile(0x22)
	p.Add(x)
	clone := p.Clone()
	clone.Remove(x)

	if !p.Contains(x) {
		t.Fatalf("mutating clone affected original pool")
	}
	if clone.Contains(x) {
		t.Fatalf("clone still contains removed tile")
	}
}
