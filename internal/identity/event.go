package identity

import (
	"encoding/json"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindCreated
	KindUpdated
	KindDeleted
	// KindEnsureExists is synthesized by the lazy-sync middleware from
	// verified session claims; it never arrives over the webhook.
	KindEnsureExists
)

func (k Kind) String() string {
	switch k {
	case KindCreated:
		return "created"
	case KindUpdated:
		return "updated"
	case KindDeleted:
		return "deleted"
	case KindEnsureExists:
		return "ensure_exists"
	default:
		return "unknown"
	}
}

// Event is the canonical form of an identity change, whatever its origin.
// AvatarURL is a pointer because the provider distinguishes "field absent"
// from "field present and empty": the latter clears the avatar.
type Event struct {
	Kind       Kind
	RawType    string
	ExternalID string
	Email      string
	Username   string
	AvatarURL  *string
	Timestamp  int64
}

type emailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type eventEnvelope struct {
	Type string `json:"type"`
	Data struct {
		ID                    string         `json:"id"`
		EmailAddresses        []emailAddress `json:"email_addresses"`
		PrimaryEmailAddressID string         `json:"primary_email_address_id"`
		Username              string         `json:"username"`
		FirstName             string         `json:"first_name"`
		ImageURL              *string        `json:"image_url"`
		ProfileImageURL       *string        `json:"profile_image_url"`
	} `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

// ParseEvent normalizes a verified provider payload. Unrecognized event
// types yield KindUnknown rather than an error so the webhook can
// acknowledge event kinds added by the provider after this code shipped.
func ParseEvent(payload []byte) (*Event, error) {
	var env eventEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("malformed event payload: %w", err)
	}

	ev := &Event{RawType: env.Type, Timestamp: env.Timestamp}

	switch env.Type {
	case "identity.created":
		ev.Kind = KindCreated
	case "identity.updated":
		ev.Kind = KindUpdated
	case "identity.deleted":
		ev.Kind = KindDeleted
	default:
		return ev, nil
	}

	if env.Data.ID == "" {
		return nil, fmt.Errorf("event %q has no user id", env.Type)
	}
	ev.ExternalID = env.Data.ID
	ev.Email = primaryEmail(env.Data.EmailAddresses, env.Data.PrimaryEmailAddressID)

	if env.Data.Username != "" {
		ev.Username = env.Data.Username
	} else {
		ev.Username = env.Data.FirstName
	}

	// Prefer the newer image_url field, fall back to the legacy one.
	if env.Data.ImageURL != nil {
		ev.AvatarURL = env.Data.ImageURL
	} else if env.Data.ProfileImageURL != nil {
		ev.AvatarURL = env.Data.ProfileImageURL
	}

	return ev, nil
}

// primaryEmail matches the provider's primary email id against its email
// list, falling back to the first listed address.
func primaryEmail(addresses []emailAddress, primaryID string) string {
	for _, addr := range addresses {
		if addr.ID == primaryID {
			return addr.EmailAddress
		}
	}
	if len(addresses) > 0 {
		return addresses[0].EmailAddress
	}
	return ""
}

// PlaceholderEmail derives a deterministic synthetic address from the
// external id so the email unique index never blocks first creation. The
// .invalid TLD guarantees it cannot collide with a real address.
func PlaceholderEmail(externalID string) string {
	prefix := externalID
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return prefix + "@users.gostays.invalid"
}

// PlaceholderUsername mirrors the provider's convention of user_<suffix>.
func PlaceholderUsername(externalID string) string {
	suffix := externalID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "user_" + suffix
}
