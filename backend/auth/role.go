package auth

// Role is a presentation-level annotation, not a stored permission. The
// owner is whoever's session email matches the configured owner address.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleClient Role = "client"
)

// Policy is the single place the owner comparison lives.
type Policy struct {
	ownerEmail string
}

func NewPolicy(ownerEmail string) *Policy {
	return &Policy{ownerEmail: NormalizeEmail(ownerEmail)}
}

func (p *Policy) RoleFor(email string) Role {
	if p.ownerEmail != "" && NormalizeEmail(email) == p.ownerEmail {
		return RoleOwner
	}
	return RoleClient
}
