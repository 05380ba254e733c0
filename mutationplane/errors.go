/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

// Package mutationplane implements the producer side of fault injection:
// registering a participant with the backend, announcing mutators,
// dispatching incoming mutation commands to local actuators, and
// resetting actuator state whenever the connection is re-established.
package mutationplane

import "errors"

var (
	// ErrDuplicateMutatorId is returned by Registry.Register when the id
	// is already registered.
	ErrDuplicateMutatorId = errors.New("mutationplane: mutator id already registered")
	// ErrUnknownMutator is returned when an announcement references a
	// MutatorId the registry does not know about. A mutation command for
	// an unknown MutatorId is answered with a rejected MutationReply
	// instead.
	ErrUnknownMutator = errors.New("mutationplane: unknown mutator id")
	// ErrRegistrationRejected is returned when the backend declines a
	// RegisterParticipant request.
	ErrRegistrationRejected = errors.New("mutationplane: participant registration rejected")
	// ErrProtocolError is returned when the peer sends a message the
	// client does not expect in the current context.
	ErrProtocolError = errors.New("mutationplane: protocol error")
)
