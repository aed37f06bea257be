package main

import "errors"

// errSilentFailure signals a non-zero exit for a business-rule
// rejection whose message was already printed.
var errSilentFailure = errors.New("command failed")
