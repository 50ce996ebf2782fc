package model

import "github.com/wiremodel/wiremodel-go/raw"

// Null forces an explicit wire null on assignment.  Assigning nil
// deletes the wire key instead; Null is the only way to express a
// PATCH-style explicit null once delete-on-nil is the default.
var Null = raw.Null
