package quote

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/pkg/errs"
	"devis/internal/pkg/guard"
)

// ActorKind is the role under which an identity acts on a quote request.
type ActorKind string

const (
	ActorClient  ActorKind = "client"
	ActorStaff   ActorKind = "staff"
	ActorCourier ActorKind = "courier"
)

// ErrActorIsNotConstructed is returned when a zero Actor reaches a guard.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor constructor")

// ParseActorKind accepts the lowercase role names used on the wire.
func ParseActorKind(s string) (ActorKind, error) {
	kind := ActorKind(strings.ToLower(strings.TrimSpace(s)))
	if err := kind.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

func (k ActorKind) Validate() error {
	switch k {
	case ActorClient, ActorStaff, ActorCourier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("actor kind", fmt.Errorf("%q is not a known role", string(k)))
	}
}

// Actor is the identity performing a transition together with its role.
type Actor struct {
	id    kernel.UUID
	kind  ActorKind
	guard guard.ConstructorGuard
}

func NewActor(id kernel.UUID, kind ActorKind) (Actor, error) {
	if err := errors.Join(id.Validate(), kind.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, kind: kind, guard: guard.NewConstructorGuard()}, nil
}

// SystemActor is the staff identity used by scheduled jobs.
func SystemActor() Actor {
	return Actor{id: systemActorID, kind: ActorStaff, guard: guard.NewConstructorGuard()}
}

var systemActorID = func() kernel.UUID {
	id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000001")
	if err != nil {
		panic(err)
	}
	return id
}()

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Kind() ActorKind {
	return a.kind
}

func (a Actor) String() string {
	return fmt.Sprintf("%s:%s", a.kind, a.id)
}

// RequireKind rejects actors whose role is not one of kinds.
func RequireKind(actor Actor, operation string, kinds ...ActorKind) error {
	if err := actor.Validate(); err != nil {
		return errs.NewForbiddenError(operation, "actor is not identified")
	}
	if !slices.Contains(kinds, actor.kind) {
		return errs.NewForbiddenError(operation, fmt.Sprintf("role %s is not allowed", actor.kind))
	}
	return nil
}
