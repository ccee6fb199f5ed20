// Package notifier runs the caregiver notifier: a gRPC server that forwards
// patient alerts to the messaging channel, keeps the latest patient report
// and the alert history, and answers status queries.
package notifier
