/*
Package hashrouter is a fragment router: it maps the routable part of an
address (the text after '#' or '#!') to ordered chains of handlers.

A trivial example is:

	package main

	import (
		"fmt"

		"github.com/pedia/hashrouter"
		"github.com/pedia/hashrouter/location"
	)

	func main() {
		r := hashrouter.New()
		r.Handle("/", func(ctx *hashrouter.Context, next func()) {
			fmt.Println("Welcome!")
		})
		r.Handle("/hello/:name", func(ctx *hashrouter.Context, next func()) {
			fmt.Printf("hello, %s!\n", ctx.Params.ByName("name"))
		})

		nav := location.NewEmitter("http://example.com/")
		stop := r.Listen(location.Detect(nav))
		defer stop()

		nav.Navigate("http://example.com/#!/hello/gopher")
	}

Routes are tried in registration order and the first one whose pattern
matches the whole fragment wins:

	Syntax          Type
	:name           named parameter
	:name?          optional named parameter
	:name(\d+)      named parameter with a custom expression
	*               wildcard, stored positionally

	Routes: /users/new, /users/:id, /files/*

	Fragments:
	 /users/new          match: first route, no params
	 /users/42           match: id="42"
	 /users/42/          match: id="42"
	 /files/a/b          match: [0]="a/b"
	 /users              no match, Dispatch returns false

Values are percent-decoded. Named parameters are read with
Params.Get or Params.ByName, positional ones with Params.At.

Each handler receives a next function. Calling it runs the following
handler of the route; returning without calling it ends the chain, which is
how guards short-circuit:

	r.Handle("/admin/*", requireLogin, showAdmin)

Unmatched fragments are not an error. Register a catch-all such as "*"
last, or set Router.NotFound, to make them visible.
*/
package hashrouter
