package model

import "time"

// Email type values. MoveToBin clears the type back to TypeNone.
const (
	TypeInbox = "inbox"
	TypeSent  = "sent"
	TypeDraft = "draft"
	TypeBin   = "bin"
	TypeNone  = ""
)

// IngestedName is the display label attached to mail pulled from the remote mailbox.
const IngestedName = "Smart Mail"

type Email struct {
	ID      int64     `json:"id"`
	To      string    `json:"to"`
	From    string    `json:"from"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Date    time.Time `json:"date"`
	Name    string    `json:"name"`
	Starred bool      `json:"starred"`
	Bin     bool      `json:"bin"`
	Type    string    `json:"type"`
}
