package service

import "github.com/empleora/recruiting/internal/domain"

// OwnershipGuard decides whether a principal may act on a record. It is a
// pure predicate layer: no stores, no side effects. Callers resolve the
// entities first and hand them in.
//
// Rules:
//   - an aspirant owns the applications they created;
//   - a recruiter acts for the company owning the application's offer;
//   - a citation is mutable only by its assigned recruiter;
//   - an admin bypasses every check.
type OwnershipGuard struct{}

// CanViewApplication reports whether the principal may read the application.
func (OwnershipGuard) CanViewApplication(p domain.Principal, app domain.Application, offer domain.Offer) bool {
	if p.IsAdmin() {
		return true
	}
	switch p.Role {
	case domain.RoleAspirant:
		return p.ID == app.AspirantID
	case domain.RoleRecruiter:
		return p.CompanyID != 0 && p.CompanyID == offer.CompanyID
	}
	return false
}

// CanMutateApplication reports whether the principal may change the
// application. The rule set matches CanViewApplication: what a party may
// actually do with the write (transition vs soft delete) is the state
// machine's concern, not the guard's.
func (g OwnershipGuard) CanMutateApplication(p domain.Principal, app domain.Application, offer domain.Offer) bool {
	return g.CanViewApplication(p, app, offer)
}

// CanViewCitation reports whether the principal may read the citation, given
// the application it belongs to and that application's offer.
func (OwnershipGuard) CanViewCitation(p domain.Principal, cit domain.Citation, app domain.Application, offer domain.Offer) bool {
	if p.IsAdmin() {
		return true
	}
	switch p.Role {
	case domain.RoleAspirant:
		return p.ID == app.AspirantID
	case domain.RoleRecruiter:
		return p.CompanyID != 0 && p.CompanyID == offer.CompanyID
	}
	return false
}

// CanMutateCitation reports whether the principal may change the citation.
// Only the assigned recruiter may, not a company peer.
func (OwnershipGuard) CanMutateCitation(p domain.Principal, cit domain.Citation) bool {
	if p.IsAdmin() {
		return true
	}
	return p.Role == domain.RoleRecruiter && p.ID == cit.RecruiterID
}
