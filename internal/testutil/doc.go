// Package testutil provides shared test utilities for loanops.
//
// # Fake Orchestrator
//
// The orchestrator.go file provides an httptest server that speaks the
// orchestrator protocol:
//
//   - NewFakeOrchestrator(t) - starts a server, closed on test cleanup
//   - Push(resp), PushRaw(status, body) - queue replies for POST /chat
//   - AddFile(name, data) - serve a document from GET /download/{name}
//   - SetHealthy(bool) - control GET /health
//   - Requests() - chat requests received so far
//
// # Fixtures
//
// The fixtures.go file provides canned replies that walk the pipeline:
//
//   - SalesReply(), VerificationReply(), UnderwritingReply()
//   - SanctionReply(amount), SanctionLetterReply(file), RejectionReply()
//
// # Environment Helpers
//
// The env.go file provides test environment setup:
//
//   - SetupTestDir(t, url) - creates a temp directory with a .loanops config
//   - WriteTestFile(t, base, path, content) - writes a file in test dir
//   - MustMarshalJSON(t, v) - marshals to JSON or fails test
//
// # Assertions
//
// The assertions.go file provides custom test assertions:
//
//   - AssertStatuses(t, progress, statuses...) - per-step tracker status
//   - AssertLastMessage(t, messages, sender, text) - newest transcript entry
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    orch := testutil.NewFakeOrchestrator(t)
//	    orch.Push(testutil.VerificationReply())
//	    client := backend.NewClient(orch.URL())
//	    // ... run test ...
//	}
package testutil
