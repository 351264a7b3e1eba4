package account

import (
	"testing"

	"github.com/synnergy-labs/asset-runtime/core/resource"
)

func mustDecimal(t *testing.T, s string) resource.Decimal {
	t.Helper()
	d, err := resource.ParseDecimal(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func resourceId(b byte) resource.ResourceId {
	var r resource.ResourceId
	r[0] = b
	return r
}

func mustBucket(t *testing.T, divisibility int, amount string) *resource.FungibleBucket {
	t.Helper()
	bkt, err := resource.NewFungibleBucket(divisibility, mustDecimal(t, amount))
	if err != nil {
		t.Fatalf("new bucket: %v", err)
	}
	return bkt
}

// S5 — authorized-depositor refund: a Reject-default account with an
// authorized-depositor badge on file still hands the bucket back, rather
// than erroring, when the deposit arrives without a proof of that badge.
func TestTryDepositOrRefundWithoutBadgeProofRefunds(t *testing.T) {
	xrd := resourceId(1)
	a := New()
	if err := a.SetDefaultDepositRule(true, DepositRuleReject); err != nil {
		t.Fatalf("set default rule: %v", err)
	}
	if err := a.AddAuthorizedDepositor(true, xrd); err != nil {
		t.Fatalf("add authorized depositor: %v", err)
	}

	bucket := mustBucket(t, 18, "1")
	refunded, event, err := a.TryDepositOrRefund(xrd, nil, bucket)
	if err != nil {
		t.Fatalf("try deposit or refund: %v", err)
	}
	if event != nil {
		t.Fatalf("expected no deposit event, got %+v", event)
	}
	if refunded == nil {
		t.Fatal("expected the bucket to be refunded, got nil")
	}
	if refunded.Amount().String() != "1" {
		t.Fatalf("refunded amount got %q, want 1", refunded.Amount().String())
	}
	if a.Balance(xrd).IsZero() == false {
		t.Fatalf("vault balance got %q, want 0", a.Balance(xrd).String())
	}
}

func TestTryDepositOrRefundWithBadgeProofSucceeds(t *testing.T) {
	xrd := resourceId(1)
	a := New()
	if err := a.SetDefaultDepositRule(true, DepositRuleReject); err != nil {
		t.Fatalf("set default rule: %v", err)
	}
	if err := a.AddAuthorizedDepositor(true, xrd); err != nil {
		t.Fatalf("add authorized depositor: %v", err)
	}

	bucket := mustBucket(t, 18, "1")
	refunded, event, err := a.TryDepositOrRefund(xrd, &xrd, bucket)
	if err != nil {
		t.Fatalf("try deposit or refund: %v", err)
	}
	if refunded != nil {
		t.Fatalf("expected no refund, got %+v", refunded)
	}
	if event == nil || event.Amount.String() != "1" {
		t.Fatalf("expected deposit event of 1, got %+v", event)
	}
	if a.Balance(xrd).String() != "1" {
		t.Fatalf("vault balance got %q, want 1", a.Balance(xrd).String())
	}
}

func TestDepositRuleAcceptAlwaysSucceeds(t *testing.T) {
	xrd := resourceId(1)
	a := New()
	bucket := mustBucket(t, 18, "5")
	event, err := a.Deposit(xrd, nil, bucket)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if event.Amount.String() != "5" {
		t.Fatalf("event amount got %q, want 5", event.Amount.String())
	}
}

func TestDepositRuleRejectBlocksUnauthorizedBadge(t *testing.T) {
	xrd := resourceId(1)
	other := resourceId(2)
	a := New()
	if err := a.SetDefaultDepositRule(true, DepositRuleReject); err != nil {
		t.Fatalf("set default rule: %v", err)
	}
	bucket := mustBucket(t, 18, "1")
	if _, err := a.Deposit(xrd, &other, bucket); err != ErrNotAnAuthorizedDepositor {
		t.Fatalf("got %v, want ErrNotAnAuthorizedDepositor", err)
	}
}

func TestTryDepositOrAbortErrorsInsteadOfRefunding(t *testing.T) {
	xrd := resourceId(1)
	a := New()
	if err := a.SetDefaultDepositRule(true, DepositRuleReject); err != nil {
		t.Fatalf("set default rule: %v", err)
	}
	bucket := mustBucket(t, 18, "1")
	if _, err := a.TryDepositOrAbort(xrd, nil, bucket); err != ErrNotAnAuthorizedDepositor {
		t.Fatalf("got %v, want ErrNotAnAuthorizedDepositor", err)
	}
}

func TestDepositRuleAllowExistingAcceptsHeldResourceOnly(t *testing.T) {
	xrd := resourceId(1)
	other := resourceId(2)
	a := New()
	// Seed a vault for xrd while still under the default Accept rule.
	if _, err := a.Deposit(xrd, nil, mustBucket(t, 18, "10")); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}
	if err := a.SetDefaultDepositRule(true, DepositRuleAllowExisting); err != nil {
		t.Fatalf("set default rule: %v", err)
	}

	if _, err := a.Deposit(xrd, nil, mustBucket(t, 18, "1")); err != nil {
		t.Fatalf("deposit into existing vault: %v", err)
	}
	if a.Balance(xrd).String() != "11" {
		t.Fatalf("balance got %q, want 11", a.Balance(xrd).String())
	}

	if _, err := a.Deposit(other, nil, mustBucket(t, 18, "1")); err != ErrNotAnAuthorizedDepositor {
		t.Fatalf("got %v, want ErrNotAnAuthorizedDepositor", err)
	}
}

func TestAddAuthorizedDepositorRequiresOwner(t *testing.T) {
	a := New()
	if err := a.AddAuthorizedDepositor(false, resourceId(1)); err != ErrNotAccountOwner {
		t.Fatalf("got %v, want ErrNotAccountOwner", err)
	}
}

func TestWithdrawRequiresOwnerAndExistingVault(t *testing.T) {
	xrd := resourceId(1)
	a := New()
	if _, _, err := a.Withdraw(false, xrd, mustDecimal(t, "1")); err != ErrNotAccountOwner {
		t.Fatalf("got %v, want ErrNotAccountOwner", err)
	}
	if _, _, err := a.Withdraw(true, xrd, mustDecimal(t, "1")); err != ErrNoVaultForResource {
		t.Fatalf("got %v, want ErrNoVaultForResource", err)
	}

	if _, err := a.Deposit(xrd, nil, mustBucket(t, 18, "10")); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}
	bucket, event, err := a.Withdraw(true, xrd, mustDecimal(t, "4"))
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if bucket.Amount().String() != "4" {
		t.Fatalf("withdrawn amount got %q, want 4", bucket.Amount().String())
	}
	if event.Amount.String() != "4" {
		t.Fatalf("event amount got %q, want 4", event.Amount.String())
	}
	if a.Balance(xrd).String() != "6" {
		t.Fatalf("remaining balance got %q, want 6", a.Balance(xrd).String())
	}
}
