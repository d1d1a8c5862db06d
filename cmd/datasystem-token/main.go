package main

import (
	"flag"
	"fmt"

	"github.com/airdatahq/datasystem"
)

var (
	app = datasystem.New()
	lg  = app.Logger

	create      = flag.Bool("create", false, "Issue a new authorization token")
	token_flags = flag.String("flags", "read", "Comma separated capability flags for the new token: none,read,write,delete")
	list        = flag.Bool("list", false, "List issued tokens")
	lock        = flag.String("lock", "", "Lock the given token")
	unlock      = flag.String("unlock", "", "Unlock the given token")
)

func main() {
	flag.Parse()

	if err := app.App.CheckAndUpdateDatabase(datasystem.DatabaseStructure); err != nil {
		panic(err)
	}

	switch {
	case *create:
		flags, err := datasystem.ParseAuthorizeFlags(*token_flags)
		if err != nil {
			lg.WithField("error", err).Fatal("Bad flag list")
		}

		a, err := app.Authorizations.Create(flags)
		if err != nil {
			lg.WithField("error", err).Fatal("Error creating token")
		}

		fmt.Printf("%s\n", a.Token)

	case *list:
		tokens, err := app.Authorizations.List(datasystem.AuthorizationCriteria{
			OrderBy: "created DESC",
		})
		if err != nil {
			lg.WithField("error", err).Fatal("Error listing tokens")
		}

		for _, a := range tokens {
			fmt.Printf("%s\tlocked=%t\tflags=%s\tcreated=%s\n", a.Token, a.Locked, a.Flags, a.Created.Format("2006-01-02 15:04:05"))
		}

	case *lock != "":
		if err := app.Authorizations.SetLocked(*lock, true); err != nil {
			lg.WithField("error", err).Fatal("Error locking token")
		}

	case *unlock != "":
		if err := app.Authorizations.SetLocked(*unlock, false); err != nil {
			lg.WithField("error", err).Fatal("Error unlocking token")
		}

	default:
		flag.Usage()
	}
}
