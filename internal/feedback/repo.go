package feedback

import "context"

type Repo interface {
	SaveContact(ctx context.Context, c Contact) error
	SaveFeedback(ctx context.Context, f Feedback) error
}
