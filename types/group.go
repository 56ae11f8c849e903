package types

// GroupMember is a member entry inside a group. Username is a snapshot
// taken when the group is created and is not kept in sync with later
// username changes.
type GroupMember struct {
	ID       string `json:"id" firestore:"id"`
	Username string `json:"username" firestore:"username"`
}

// Group is a shared group of users working on the same set of tasks.
//
// Member usernames are snapshot fields. CreatedByUsername is also
// captured at creation, but group listings re-resolve the creator's
// current display name on every read.
type Group struct {
	// ID is the document identifier of the group.
	ID string `json:"id" firestore:"-"`

	Name        string        `json:"name" firestore:"name"`
	Description string        `json:"description" firestore:"description"`
	Members     []GroupMember `json:"members" firestore:"members"`

	// CreatedBy is the user id of the group creator.
	CreatedBy string `json:"createdBy" firestore:"createdBy"`

	// CreatedByUsername is the creator's display name.
	CreatedByUsername string `json:"createdByUsername" firestore:"createdByUsername"`

	// Status is one of the Status* constants. The json name "estatus"
	// is part of the wire format expected by the client.
	Status string `json:"estatus" firestore:"estatus"`
}
