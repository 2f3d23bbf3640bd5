package scheduler

import "github.com/omidp/axon-go/lifecycle"

// Inline is lifecycle.InlineScheduler, re-exported here so callers that
// import scheduler for Pool don't also need to import lifecycle just to
// name the default.
var Inline = lifecycle.InlineScheduler
