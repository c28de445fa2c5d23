/*
Package aura is the client core of a small mobile-banking app: login, a home screen
showing the balance of the primary account, and money transfers.

Each screen is a state machine whose single observable value is an LCE
(Loading/Content/Error). Screens call repositories, which call the HTTP network
boundary; network failures are classified into a closed taxonomy and mapped to
user-facing messages.

# Usage

	app, err := aura.New(aura.WithBaseURL("http://localhost:8080/"))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	login := app.LoginScreen()
	defer login.Close()

	session, err := login.Submit(ctx, "alice", "secret")
	if err != nil {
		log.Fatal(login.State().Message)
	}

	home, _ := app.HomeScreen(session)
	defer home.Close()
	if content, err := home.Refresh(ctx); err == nil {
		fmt.Println(screen.DisplayBalance(content.Balance))
	}

Front ends that render asynchronously subscribe with Watch and run commands in
their own goroutines; the Runner type drives the whole flow over a line-based terminal.

The companion demo bank (pkg/ledger served by pkg/adapters/http) implements the
server side of the protocol.
*/
package aura
