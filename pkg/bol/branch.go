package bol

// ResolveBranch fills every empty field of b from defaults. A nil b yields
// the defaults. The result never aliases b's slices.
func ResolveBranch(b *BranchInfo, defaults BranchInfo) BranchInfo {
	if b == nil {
		return cloneBranch(defaults)
	}
	out := cloneBranch(*b)
	out.Name = firstNonEmpty(out.Name, defaults.Name)
	out.Address = firstNonEmpty(out.Address, defaults.Address)
	out.City = firstNonEmpty(out.City, defaults.City)
	out.Phone = firstNonEmpty(out.Phone, defaults.Phone)
	out.Email = firstNonEmpty(out.Email, defaults.Email)
	if len(out.TaxIDs) == 0 {
		out.TaxIDs = append([]string(nil), defaults.TaxIDs...)
	}
	if len(out.Logo) == 0 {
		out.Logo = defaults.Logo
	}
	return out
}

func cloneBranch(b BranchInfo) BranchInfo {
	b.TaxIDs = append([]string(nil), b.TaxIDs...)
	return b
}
