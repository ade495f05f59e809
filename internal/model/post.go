package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Post is one forum question. The vote arrays and voteCount live inside the
// post document itself, so a single update writes the whole vote state.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user_id"`
	Username  string             `bson:"username" json:"username"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Tags      []string           `bson:"tags" json:"tags"`
	Featured  bool               `bson:"featured" json:"featured"`
	Upvotes   []Vote             `bson:"upvotes" json:"upvotes"`
	Downvotes []Vote             `bson:"downvotes" json:"downvotes"`
	VoteCount int                `bson:"voteCount" json:"vote_count"`
	CreatedAt string             `bson:"createdAt" json:"created_at"`
}

// Vote exists only nested inside a post's upvotes or downvotes.
type Vote struct {
	Username  string `bson:"username" json:"username"`
	CreatedAt string `bson:"createdAt" json:"created_at"`
}

// VoteSide selects which of the two vote arrays a toggle targets.
type VoteSide int

const (
	Upvote VoteSide = iota
	Downvote
)

// ToggleVote reconciles one voter's state against the post:
// a repeated vote of the same polarity retracts it, and a vote of one
// polarity displaces a standing vote of the opposite polarity. At most one
// of the two arrays ever holds the username. voteCount is recomputed from
// the array lengths on every call.
func (p *Post) ToggleVote(side VoteSide, username string, castAt string) {
	this, other := &p.Upvotes, &p.Downvotes
	if side == Downvote {
		this, other = other, this
	}

	if removeVote(this, username) {
		p.recountVotes()
		return
	}

	removeVote(other, username)
	*this = append(*this, Vote{Username: username, CreatedAt: castAt})
	p.recountVotes()
}

// HasVoted reports whether username holds a standing vote on the given side.
func (p *Post) HasVoted(side VoteSide, username string) bool {
	votes := p.Upvotes
	if side == Downvote {
		votes = p.Downvotes
	}
	for _, v := range votes {
		if v.Username == username {
			return true
		}
	}
	return false
}

func (p *Post) recountVotes() {
	p.VoteCount = len(p.Upvotes) - len(p.Downvotes)
}

func removeVote(votes *[]Vote, username string) bool {
	for i, v := range *votes {
		if v.Username == username {
			*votes = append((*votes)[:i], (*votes)[i+1:]...)
			return true
		}
	}
	return false
}
