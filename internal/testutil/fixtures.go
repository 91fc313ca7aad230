package testutil

import "github.com/thruflo/loanops/internal/backend"

// SamplePDF is a stand-in sanction document.
var SamplePDF = []byte("%PDF-1.4\n% loanops test document\n")

// SalesReply returns a reply with no stage signal.
func SalesReply() backend.ChatResponse {
	return backend.ChatResponse{Reply: "What loan amount are you looking for?"}
}

// VerificationReply returns a reply whose text implies verification.
func VerificationReply() backend.ChatResponse {
	return backend.ChatResponse{Reply: "Let's verify your PAN"}
}

// UnderwritingReply returns a reply with an explicit underwriting stage.
func UnderwritingReply() backend.ChatResponse {
	return backend.ChatResponse{
		Reply:       "Thanks, checking your eligibility now.",
		Stage:       "underwriting",
		ActiveAgent: "UnderwritingAgent",
	}
}

// SanctionReply returns a sanction reply carrying loan details but no letter.
func SanctionReply(amount float64) backend.ChatResponse {
	return backend.ChatResponse{
		Reply:          "Congratulations, sanctioned!",
		Stage:          "sanction",
		LoanDetails:    backend.LoanDetails{"amount": amount, "tenure": float64(24), "interest_rate": 10.5},
		ActiveAgent:    "SanctionAgent",
		SanctionStatus: "completed",
		DecisionType:   "AUTOMATED",
	}
}

// SanctionLetterReply returns a sanction reply naming a generated letter.
func SanctionLetterReply(file string) backend.ChatResponse {
	resp := SanctionReply(50000)
	resp.SanctionLetter = &backend.SanctionLetter{File: file}
	return resp
}

// RejectionReply returns an explicit rejection.
func RejectionReply() backend.ChatResponse {
	return backend.ChatResponse{
		Reply: "We regret to inform you that your loan application could not be approved at this time.",
		Stage: "rejected",
	}
}
