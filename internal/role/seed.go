package role

import (
	"context"
	"errors"

	"github.com/Kyz7/storefront/internal/permission"
	"github.com/Kyz7/storefront/internal/shared"
)

// DefaultRoles are the storefront tiers. Each tier's mask holds every bit of
// the tier below, so the numeric comparison ranks them as intended.
var DefaultRoles = []struct {
	Name        string
	Description string
	Permissions permission.Set
}{
	{"User", "Customer account", permission.Login | permission.Comment},
	{"Editor", "Writes and edits catalog content", permission.Login | permission.Comment | permission.WriteArticles | permission.Editor},
	{"Operator", "Runs orders and fulfilment", permission.Login | permission.Comment | permission.WriteArticles | permission.Editor | permission.Operator},
	{"Administrator", "Full access", permission.All},
}

// SeedDefaultRoles creates the default roles that do not exist yet.
func SeedDefaultRoles(ctx context.Context, s *Store) error {
	for _, r := range DefaultRoles {
		_, err := s.CreateRole(ctx, r.Name, r.Description, r.Permissions)
		if err != nil && !errors.Is(err, shared.ErrConflict) {
			return err
		}
	}
	return nil
}
