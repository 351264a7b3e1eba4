package resource

import "testing"

func TestFungibleProofLocksVault(t *testing.T) {
	v, _ := NewFungibleVault(18)
	b, _ := NewFungibleBucket(18, mustDecimal(t, "100"))
	if err := v.Put(b); err != nil {
		t.Fatalf("put: %v", err)
	}
	var resource ResourceId
	p, err := NewFungibleVaultProof(resource, v, mustDecimal(t, "60"))
	if err != nil {
		t.Fatalf("proof: %v", err)
	}
	if _, err := v.Take(mustDecimal(t, "50")); err != ErrInsufficientBalance {
		t.Fatalf("expected locked balance to block take, got %v", err)
	}
	p.Drop()
	if _, err := v.Take(mustDecimal(t, "50")); err != nil {
		t.Fatalf("take after drop: %v", err)
	}
}

func TestFungibleProofComposeRejectsMismatchedResource(t *testing.T) {
	v1, _ := NewFungibleVault(18)
	v2, _ := NewFungibleVault(18)
	b1, _ := NewFungibleBucket(18, mustDecimal(t, "10"))
	b2, _ := NewFungibleBucket(18, mustDecimal(t, "10"))
	v1.Put(b1)
	v2.Put(b2)

	var r1, r2 ResourceId
	r2[0] = 1
	p1, err := NewFungibleVaultProof(r1, v1, mustDecimal(t, "5"))
	if err != nil {
		t.Fatalf("proof1: %v", err)
	}
	p2, err := NewFungibleVaultProof(r2, v2, mustDecimal(t, "5"))
	if err != nil {
		t.Fatalf("proof2: %v", err)
	}
	if _, err := p1.Compose(p2); err != ErrProofResourceMismatch {
		t.Fatalf("got %v, want ErrProofResourceMismatch", err)
	}
}

func TestNonFungibleProofLocksVault(t *testing.T) {
	v := NewNonFungibleVault(NonFungibleIdInteger)
	ids := []NonFungibleLocalId{NewIntegerLocalId(1), NewIntegerLocalId(2)}
	b, _ := NewNonFungibleBucket(NonFungibleIdInteger, ids)
	v.Put(b)

	var resource ResourceId
	p, err := NewNonFungibleVaultProof(resource, v, []NonFungibleLocalId{NewIntegerLocalId(1)})
	if err != nil {
		t.Fatalf("proof: %v", err)
	}
	if _, err := v.TakeIds([]NonFungibleLocalId{NewIntegerLocalId(1)}); err != ErrProofSourceLocked {
		t.Fatalf("expected locked id to block take, got %v", err)
	}
	p.Drop()
	if _, err := v.TakeIds([]NonFungibleLocalId{NewIntegerLocalId(1)}); err != nil {
		t.Fatalf("take after drop: %v", err)
	}
}
