// Package notifier implements the gRPC transport of the caregiver notifier.
//
// The NotifierService is described by hand with protobuf well-known types
// (structpb, wrapperspb, emptypb) so that no generated code is needed. The
// package holds the service descriptor, a server adapting a business Service
// and a client used by the monitor and the status CLI.
package notifier
