// Package canned provides an offline tutor responder with keyword-matched replies
package canned

import (
	"context"
	"strings"
)

const (
	blockchainReply = "Blockchain is a distributed ledger technology that enables secure, transparent, and immutable record-keeping. " +
		"Each 'block' contains a batch of transactions, and each new block includes a hash of the previous one, forming a chain. " +
		"This creates a tamper-evident system where altering any block would require changing all subsequent blocks. " +
		"Would you like to learn more about specific aspects like consensus mechanisms or smart contracts?"
	credentialReply = "Digital credentials use cryptographic techniques to ensure their authenticity and integrity. " +
		"In a blockchain-based system, credentials are typically represented as tokens or NFTs with metadata describing the achievement. " +
		"The verification process involves checking the digital signature against the issuer's public key and confirming the record exists on the blockchain. " +
		"This eliminates the need for centralized verification services and prevents credential forgery."
	courseReply = "I'd be happy to help you find a suitable course! " +
		"Our platform offers courses across various disciplines with a focus on emerging technologies. " +
		"Each course includes interactive modules, practical exercises, and assessments. " +
		"Upon completion, you'll receive a verifiable digital credential. What specific subject are you interested in learning about?"
	defaultReply = "I'm your AI tutor, here to help with your learning journey. " +
		"I can explain concepts, answer questions about our courses, help with exercises, or provide information about digital credentials. " +
		"What would you like assistance with today?"
)

type rule struct {
	keywords []string
	reply    string
}

var rules = []rule{
	{keywords: []string{"blockchain"}, reply: blockchainReply},
	{keywords: []string{"credential", "certificate"}, reply: credentialReply},
	{keywords: []string{"course", "learn"}, reply: courseReply},
}

// Responder answers from a fixed set of replies chosen by keyword
type Responder struct{}

// NewResponder creates a new canned responder
func NewResponder() *Responder {
	return &Responder{}
}

// Complete returns the reply of the first rule whose keyword occurs in the message.
// The prompt context is ignored.
func (r *Responder) Complete(ctx context.Context, promptContext, userMessage string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	message := strings.ToLower(userMessage)
	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(message, keyword) {
				return rule.reply, nil
			}
		}
	}
	return defaultReply, nil
}
