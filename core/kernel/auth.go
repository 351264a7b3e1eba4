package kernel

// RoleRequirement is a closed description of what the auth zone must
// contain for a method call to proceed. This replaces dynamic dispatch
// over method names with a small enum resolved against a statically
// known badge resource.
type RoleRequirement struct {
	// Public requires no proof at all.
	Public bool
	// RequireResource, when set, is the resource a proof in the auth zone
	// must attest to for the call to be authorized.
	RequireResource [30]byte
	HasResource     bool
}

func Public() RoleRequirement {
	return RoleRequirement{Public: true}
}

func RequireBadge(resource [30]byte) RoleRequirement {
	return RoleRequirement{RequireResource: resource, HasResource: true}
}

// ResolveAuth checks requirement against the proofs currently pushed into
// the auth zone. It is the kernel-level check on method entry;
// authorized-depositor-style refinements (e.g. try_deposit_or_refund) are
// an application-level check layered on top, not part of this function.
func ResolveAuth(zone []ProofRef, requirement RoleRequirement) error {
	if requirement.Public {
		return nil
	}
	if !requirement.HasResource {
		return nil
	}
	for _, p := range zone {
		if p.Resource == requirement.RequireResource {
			return nil
		}
	}
	return ErrAuthFailed
}
