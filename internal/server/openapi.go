package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/brightstage/eventdeck/internal/eventdeck"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse acknowledges an operation with no other payload.
type OKResponse struct {
	Status string `json:"status"`
}

// HealthResponse maps dependency names to their check result.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

// MessageQuery documents the query parameters of GET /api/message.
type MessageQuery struct {
	ClientID string `query:"client_id"`
	Audience string `query:"audience"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "EventDeck API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the EventDeck event dashboard.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/
	getStatus, _ := r.NewOperationContext(http.MethodGet, "/api/")
	getStatus.SetSummary("API status")
	getStatus.SetDescription("Returns a status banner and the configured external state API.")
	getStatus.AddRespStructure(StatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getStatus)

	// GET /api/settings
	getSettings, _ := r.NewOperationContext(http.MethodGet, "/api/settings")
	getSettings.SetSummary("Get settings")
	getSettings.SetDescription("Returns the display settings singleton.")
	getSettings.AddRespStructure(eventdeck.Settings{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getSettings)

	// PUT /api/settings
	putSettings, _ := r.NewOperationContext(http.MethodPut, "/api/settings")
	putSettings.SetSummary("Update settings")
	putSettings.SetDescription("Merges the supplied fields over the stored settings. Requires Bearer token.")
	putSettings.AddReqStructure(eventdeck.SettingsPatch{})
	putSettings.AddRespStructure(eventdeck.Settings{}, openapi.WithHTTPStatus(http.StatusOK))
	putSettings.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(putSettings)

	// GET /api/phases
	listPhases, _ := r.NewOperationContext(http.MethodGet, "/api/phases")
	listPhases.SetSummary("List phases")
	listPhases.SetDescription("Returns all phases sorted by order.")
	listPhases.AddRespStructure([]eventdeck.Phase{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listPhases)

	// POST /api/phases
	createPhase, _ := r.NewOperationContext(http.MethodPost, "/api/phases")
	createPhase.SetSummary("Create phase")
	createPhase.SetDescription("Creates a phase. Requires Bearer token.")
	createPhase.AddReqStructure(PhaseRequest{})
	createPhase.AddRespStructure(eventdeck.Phase{}, openapi.WithHTTPStatus(http.StatusCreated))
	createPhase.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createPhase.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createPhase)

	// PUT /api/phases/{id}
	updatePhase, _ := r.NewOperationContext(http.MethodPut, "/api/phases/{id}")
	updatePhase.SetSummary("Update phase")
	updatePhase.SetDescription("Replaces a phase's name, color and order. Requires Bearer token.")
	updatePhase.AddReqStructure(PhaseRequest{})
	updatePhase.AddRespStructure(eventdeck.Phase{}, openapi.WithHTTPStatus(http.StatusOK))
	updatePhase.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updatePhase.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updatePhase)

	// DELETE /api/phases/{id}
	deletePhase, _ := r.NewOperationContext(http.MethodDelete, "/api/phases/{id}")
	deletePhase.SetSummary("Delete phase")
	deletePhase.SetDescription("Deletes a phase. Requires Bearer token.")
	deletePhase.AddRespStructure(OKResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	deletePhase.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deletePhase.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deletePhase)

	// GET /api/people
	listPeople, _ := r.NewOperationContext(http.MethodGet, "/api/people")
	listPeople.SetSummary("List people")
	listPeople.AddRespStructure([]eventdeck.Person{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listPeople)

	// POST /api/people
	createPerson, _ := r.NewOperationContext(http.MethodPost, "/api/people")
	createPerson.SetSummary("Create person")
	createPerson.SetDescription("Creates a person. Requires Bearer token.")
	createPerson.AddReqStructure(PersonRequest{})
	createPerson.AddRespStructure(eventdeck.Person{}, openapi.WithHTTPStatus(http.StatusCreated))
	createPerson.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createPerson.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createPerson)

	// PUT /api/people/{id}
	updatePerson, _ := r.NewOperationContext(http.MethodPut, "/api/people/{id}")
	updatePerson.SetSummary("Update person")
	updatePerson.SetDescription("Replaces a person's name, role and color. Requires Bearer token.")
	updatePerson.AddReqStructure(PersonRequest{})
	updatePerson.AddRespStructure(eventdeck.Person{}, openapi.WithHTTPStatus(http.StatusOK))
	updatePerson.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updatePerson.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updatePerson)

	// DELETE /api/people/{id}
	deletePerson, _ := r.NewOperationContext(http.MethodDelete, "/api/people/{id}")
	deletePerson.SetSummary("Delete person")
	deletePerson.SetDescription("Deletes a person. Requires Bearer token.")
	deletePerson.AddRespStructure(OKResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	deletePerson.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deletePerson.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deletePerson)

	// GET /api/groups
	listGroups, _ := r.NewOperationContext(http.MethodGet, "/api/groups")
	listGroups.SetSummary("List groups")
	listGroups.AddRespStructure([]eventdeck.Group{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listGroups)

	// POST /api/groups
	createGroup, _ := r.NewOperationContext(http.MethodPost, "/api/groups")
	createGroup.SetSummary("Create group")
	createGroup.SetDescription("Creates a group. Member ids are not referentially checked. Requires Bearer token.")
	createGroup.AddReqStructure(GroupRequest{})
	createGroup.AddRespStructure(eventdeck.Group{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createGroup)

	// PUT /api/groups/{id}
	updateGroup, _ := r.NewOperationContext(http.MethodPut, "/api/groups/{id}")
	updateGroup.SetSummary("Update group")
	updateGroup.SetDescription("Replaces a group's name, color and members. Requires Bearer token.")
	updateGroup.AddReqStructure(GroupRequest{})
	updateGroup.AddRespStructure(eventdeck.Group{}, openapi.WithHTTPStatus(http.StatusOK))
	updateGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updateGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updateGroup)

	// DELETE /api/groups/{id}
	deleteGroup, _ := r.NewOperationContext(http.MethodDelete, "/api/groups/{id}")
	deleteGroup.SetSummary("Delete group")
	deleteGroup.SetDescription("Deletes a group. Requires Bearer token.")
	deleteGroup.AddRespStructure(OKResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	deleteGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteGroup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteGroup)

	// GET /api/schedule
	listSchedule, _ := r.NewOperationContext(http.MethodGet, "/api/schedule")
	listSchedule.SetSummary("List schedule")
	listSchedule.SetDescription("Returns the schedule in display order.")
	listSchedule.AddRespStructure([]eventdeck.ScheduleItem{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listSchedule)

	// POST /api/schedule
	createItem, _ := r.NewOperationContext(http.MethodPost, "/api/schedule")
	createItem.SetSummary("Create schedule item")
	createItem.SetDescription("Creates an item at the end of the schedule. Requires Bearer token.")
	createItem.AddReqStructure(ScheduleItemRequest{})
	createItem.AddRespStructure(eventdeck.ScheduleItem{}, openapi.WithHTTPStatus(http.StatusCreated))
	createItem.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createItem.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createItem)

	// PUT /api/schedule/reorder
	reorder, _ := r.NewOperationContext(http.MethodPut, "/api/schedule/reorder")
	reorder.SetSummary("Reorder schedule")
	reorder.SetDescription("Rearranges the schedule into the given id order. The list must contain every item id exactly once. Requires Bearer token.")
	reorder.AddReqStructure(ReorderRequest{})
	reorder.AddRespStructure([]eventdeck.ScheduleItem{}, openapi.WithHTTPStatus(http.StatusOK))
	reorder.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	reorder.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(reorder)

	// PUT /api/schedule/{id}
	updateItem, _ := r.NewOperationContext(http.MethodPut, "/api/schedule/{id}")
	updateItem.SetSummary("Update schedule item")
	updateItem.SetDescription("Applies a partial update; only supplied fields change. Requires Bearer token.")
	updateItem.AddReqStructure(eventdeck.ScheduleItemPatch{})
	updateItem.AddRespStructure(eventdeck.ScheduleItem{}, openapi.WithHTTPStatus(http.StatusOK))
	updateItem.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updateItem.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updateItem)

	// DELETE /api/schedule/{id}
	deleteItem, _ := r.NewOperationContext(http.MethodDelete, "/api/schedule/{id}")
	deleteItem.SetSummary("Delete schedule item")
	deleteItem.SetDescription("Deletes a schedule item. Requires Bearer token.")
	deleteItem.AddRespStructure(OKResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	deleteItem.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteItem.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteItem)

	// POST /api/control/next
	next, _ := r.NewOperationContext(http.MethodPost, "/api/control/next")
	next.SetSummary("Advance to next item")
	next.SetDescription("Moves the current marker one item forward, stopping at the last item. Requires Bearer token.")
	next.AddRespStructure(ControlResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	next.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(next)

	// POST /api/control/previous
	previous, _ := r.NewOperationContext(http.MethodPost, "/api/control/previous")
	previous.SetSummary("Go back to previous item")
	previous.SetDescription("Moves the current marker one item back, stopping at the first item. Requires Bearer token.")
	previous.AddRespStructure(ControlResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	previous.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(previous)

	// POST /api/control/pause
	pause, _ := r.NewOperationContext(http.MethodPost, "/api/control/pause")
	pause.SetSummary("Toggle pause")
	pause.SetDescription("Flips the pause flag. Consumers freeze the countdown while paused. Requires Bearer token.")
	pause.AddRespStructure(PauseResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	pause.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(pause)

	// POST /api/control/clear-current
	clearCurrent, _ := r.NewOperationContext(http.MethodPost, "/api/control/clear-current")
	clearCurrent.SetSummary("Clear current item")
	clearCurrent.SetDescription("Removes the current marker from every item. Requires Bearer token.")
	clearCurrent.AddRespStructure(ControlResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	clearCurrent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(clearCurrent)

	// POST /api/control/set-current/{id}
	setCurrent, _ := r.NewOperationContext(http.MethodPost, "/api/control/set-current/{id}")
	setCurrent.SetSummary("Set current item")
	setCurrent.SetDescription("Makes the given item current regardless of its position. Requires Bearer token.")
	setCurrent.AddRespStructure(ControlResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	setCurrent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	setCurrent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(setCurrent)

	// GET /api/message
	getMessage, _ := r.NewOperationContext(http.MethodGet, "/api/message")
	getMessage.SetSummary("Get broadcast message")
	getMessage.SetDescription("Returns the message as seen by the given client: active only while globally active and not yet acknowledged by that client.")
	getMessage.AddReqStructure(MessageQuery{})
	getMessage.AddRespStructure(eventdeck.MessageView{}, openapi.WithHTTPStatus(http.StatusOK))
	getMessage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getMessage)

	// POST /api/message
	postMessage, _ := r.NewOperationContext(http.MethodPost, "/api/message")
	postMessage.SetSummary("Post broadcast message")
	postMessage.SetDescription("Replaces the active message and resets all acknowledgements. Requires Bearer token.")
	postMessage.AddReqStructure(MessageRequest{})
	postMessage.AddRespStructure(eventdeck.Message{}, openapi.WithHTTPStatus(http.StatusOK))
	postMessage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postMessage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postMessage)

	// POST /api/message/ack
	ackMessage, _ := r.NewOperationContext(http.MethodPost, "/api/message/ack")
	ackMessage.SetSummary("Acknowledge message")
	ackMessage.SetDescription("Dismisses the message for one client without deactivating it for others. Idempotent.")
	ackMessage.AddReqStructure(AckRequest{})
	ackMessage.AddRespStructure(OKResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	ackMessage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(ackMessage)

	// POST /api/message/clear
	clearMessage, _ := r.NewOperationContext(http.MethodPost, "/api/message/clear")
	clearMessage.SetSummary("Clear message")
	clearMessage.SetDescription("Deactivates the message for every client. Requires Bearer token.")
	clearMessage.AddReqStructure(ClearRequest{})
	clearMessage.AddRespStructure(OKResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	clearMessage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(clearMessage)

	// GET /api/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/state")
	getState.SetSummary("Get full state")
	getState.SetDescription("Returns settings, phases and schedule in one snapshot for the viewer pages and external sync.")
	getState.AddRespStructure(eventdeck.State{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getState)

	// POST /api/state
	postState, _ := r.NewOperationContext(http.MethodPost, "/api/state")
	postState.SetSummary("Replace state")
	postState.SetDescription("Swaps in collections from a snapshot; absent collections are left alone. Requires Bearer token.")
	postState.AddReqStructure(eventdeck.State{})
	postState.AddRespStructure(SyncResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postState)

	// POST /api/state/sync-to-external
	syncTo, _ := r.NewOperationContext(http.MethodPost, "/api/state/sync-to-external")
	syncTo.SetSummary("Push state to external API")
	syncTo.SetDescription("Pushes the snapshot to the configured external state API. Requires Bearer token.")
	syncTo.AddRespStructure(SyncResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	syncTo.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	syncTo.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	syncTo.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(syncTo)

	// POST /api/state/sync-from-external
	syncFrom, _ := r.NewOperationContext(http.MethodPost, "/api/state/sync-from-external")
	syncFrom.SetSummary("Pull state from external API")
	syncFrom.SetDescription("Fetches the peer's snapshot and swaps in its collections. Requires Bearer token.")
	syncFrom.AddRespStructure(SyncResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	syncFrom.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	syncFrom.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	syncFrom.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(syncFrom)

	// POST /api/auth/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/auth/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticates with username and password. Returns a bearer token valid for seven days.")
	postLogin.AddReqStructure(LoginRequest{})
	postLogin.AddRespStructure(TokenResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// GET /api/auth/verify
	verify, _ := r.NewOperationContext(http.MethodGet, "/api/auth/verify")
	verify.SetSummary("Verify token")
	verify.SetDescription("Confirms the bearer token is still valid. Requires Bearer token.")
	verify.AddRespStructure(VerifyResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	verify.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(verify)

	// POST /api/auth/change-password
	changePassword, _ := r.NewOperationContext(http.MethodPost, "/api/auth/change-password")
	changePassword.SetSummary("Change password")
	changePassword.SetDescription("Rehashes the calling admin's password. Requires Bearer token.")
	changePassword.AddReqStructure(ChangePasswordRequest{})
	changePassword.AddRespStructure(OKResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	changePassword.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	changePassword.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(changePassword)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
