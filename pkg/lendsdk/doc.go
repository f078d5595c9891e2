/*
Package lendsdk is a Go client for the hardware lending API.

# Client vs Session

Client covers the public endpoints: account registration, sign-in, password
reset and the health probes. Signing in returns a Session that carries the
bearer token for everything else:

	client := lendsdk.NewClient("https://lend.example.com")

	session, err := client.Login(ctx, "alice", "correct horse", "")
	if lendsdk.IsCode(err, lendsdk.CodeMFARequired) {
		session, err = client.Login(ctx, "alice", "correct horse", code)
	}

	mv, err := session.Checkout(ctx, "proj-a", "HWSet1", 4)

Sessions are not refreshed. Once the token expires every method returns
ErrSessionExpired and the caller must sign in again.

# Errors

Failed calls return an *APIError whose Code is one of the Code* constants.
Use IsCode to branch on a specific failure:

	if lendsdk.IsCode(err, lendsdk.CodeInsufficientAvailability) {
		// ask for fewer units
	}

Transfer is the exception: the call itself succeeds and each line carries its
own success flag and code.
*/
package lendsdk
