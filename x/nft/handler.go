package nft

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/gconf"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/x"
)

// RegisterRoutes registers the configuration update handler. Classes and
// tokens are managed through the Controller only.
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	r = migration.SchemaMigratingRegistry(confPkg, r)
	r.Handle(&UpdateConfigurationMsg{}, NewConfigHandler(auth))
}

// NewConfigHandler returns a handler that applies configuration patches
// signed by the configuration owner. Without a stored configuration the
// migration admin may create one.
func NewConfigHandler(auth x.Authenticator) weave.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth, migration.CurrentAdmin)
}
