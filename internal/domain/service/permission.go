package service

import (
	"github.com/hcplayer1988/coderr/internal/domain/entity"
)

// Action names an operation an actor wants to perform on a resource.
type Action string

const (
	// ActionUpdate modifies an existing resource.
	ActionUpdate Action = "update"
	// ActionDelete removes an existing resource.
	ActionDelete Action = "delete"
)

// Decision is the outcome of a capability check. Reason is set when denied.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// AllowProfile checks whether the actor may perform the action on the profile.
// Profiles are mutable only by their owning user.
func AllowProfile(actor *entity.User, profile *entity.Profile, _ Action) Decision {
	if actor.ID == profile.UserID {
		return allow()
	}

	return deny("only the profile owner may modify it")
}

// AllowOffer checks whether the actor may perform the action on the offer.
// Offers are mutable only by their creator.
func AllowOffer(actor *entity.User, offer *entity.Offer, _ Action) Decision {
	if actor.ID == offer.UserID {
		return allow()
	}

	return deny("only the offer creator may modify it")
}

// AllowOrder checks whether the actor may perform the action on the order.
// Status updates belong to the business party, deletion to staff.
func AllowOrder(actor *entity.User, order *entity.Order, action Action) Decision {
	switch action {
	case ActionUpdate:
		if actor.ID == order.BusinessUser {
			return allow()
		}

		return deny("only the business user of the order may update its status")
	case ActionDelete:
		if actor.IsStaff {
			return allow()
		}

		return deny("only staff users may delete orders")
	default:
		return deny("unknown action")
	}
}

// AllowReview checks whether the actor may perform the action on the review.
// Reviews are mutable only by their author.
func AllowReview(actor *entity.User, review *entity.Review, _ Action) Decision {
	if actor.ID == review.Reviewer {
		return allow()
	}

	return deny("only the review author may modify it")
}
