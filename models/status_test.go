package models

import "testing"

func TestProposalTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{ProposalDraft, ProposalSent, true},
		{ProposalSent, ProposalViewed, true},
		{ProposalSent, ProposalAccepted, true},
		{ProposalViewed, ProposalRejected, true},
		{ProposalDraft, ProposalAccepted, false},
		{ProposalAccepted, ProposalDraft, false},
		{ProposalRejected, ProposalSent, false},
	}
	for _, tc := range tests {
		p := &Proposal{Status: tc.from}
		if got := p.CanTransition(tc.to); got != tc.ok {
			t.Errorf("proposal %s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestContractTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{ContractDraft, ContractSent, true},
		{ContractSent, ContractViewed, true},
		{ContractViewed, ContractSigned, true},
		{ContractSent, ContractSigned, true}, // signing without a reported view
		{ContractSigned, ContractCountersigned, true},
		// countersign is only reachable from signed
		{ContractDraft, ContractCountersigned, false},
		{ContractSent, ContractCountersigned, false},
		{ContractViewed, ContractCountersigned, false},
		// cancelled from any non-terminal state, never out of it
		{ContractDraft, ContractCancelled, true},
		{ContractSigned, ContractCancelled, true},
		{ContractCancelled, ContractSent, false},
		{ContractCountersigned, ContractCancelled, false},
	}
	for _, tc := range tests {
		c := &Contract{Status: tc.from}
		if got := c.CanTransition(tc.to); got != tc.ok {
			t.Errorf("contract %s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestContractEditableOnlyInDraft(t *testing.T) {
	for _, status := range []string{ContractSent, ContractViewed, ContractSigned, ContractCountersigned, ContractCancelled} {
		c := &Contract{Status: status}
		if c.Editable() {
			t.Errorf("contract in %s must not be editable", status)
		}
	}
	if !(&Contract{Status: ContractDraft}).Editable() {
		t.Error("draft contract must be editable")
	}
}

func TestInvoiceTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{InvoiceDraft, InvoiceSent, true},
		{InvoiceSent, InvoicePaid, true},
		{InvoiceSent, InvoiceOverdue, true},
		{InvoiceOverdue, InvoicePaid, true},
		{InvoiceDraft, InvoicePaid, false},
		{InvoicePaid, InvoiceOverdue, false},
		{InvoiceCancelled, InvoiceSent, false},
	}
	for _, tc := range tests {
		inv := &Invoice{Status: tc.from}
		if got := inv.CanTransition(tc.to); got != tc.ok {
			t.Errorf("invoice %s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}
