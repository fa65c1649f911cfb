/*
Jlserve runs jl's extraction engine as an HTTP service.

Usage:

	jlserve [flags]

The flags are:

	-v, --version
		Give the current version of jl and then exit.

	-a, --addr ADDR
		Address to listen on. Defaults to ":8080".

	-s, --secret SECRET
		Shared secret used both to sign bearer tokens and to
		authenticate POST /api/v1/token requests. Required unless
		JL_SECRET is set in the environment.

Routes:

	GET  /api/v1/info     version info, unauthenticated
	POST /api/v1/token    exchange the shared secret for a bearer token
	POST /api/v1/extract  run the engine over the request body, bearer-protected
*/
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/ajbruin/jl/internal/jlserver"
	"github.com/ajbruin/jl/internal/version"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the version info and exit")
	flagAddr    = pflag.StringP("addr", "a", ":8080", "Address to listen on")
	flagSecret  = pflag.StringP("secret", "s", "", "Shared secret for signing and issuing bearer tokens")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	secret := *flagSecret
	if secret == "" {
		secret = os.Getenv("JL_SECRET")
	}
	if secret == "" {
		fmt.Fprintln(os.Stderr, "ERROR: a secret is required, via -s or the JL_SECRET environment variable")
		os.Exit(1)
	}

	api := jlserver.API{
		Secret:      []byte(secret),
		UnauthDelay: jlserver.DefaultUnauthDelay,
	}

	fmt.Printf("jlserve %s listening on %s\n", version.Current, *flagAddr)
	if err := http.ListenAndServe(*flagAddr, api.Router()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}
