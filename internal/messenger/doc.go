// Package messenger delivers caregiver messages.
//
// Telegram posts to the Bot API sendMessage method. Log writes messages to the
// process log and is used when no chat is configured.
package messenger
