package route

import (
	"encoding/json"
	"famcal/src-server/model"
	"famcal/src-server/store"
	"famcal/src-server/utils"
	"log/slog"
	"net/http"
	"time"
)

func Event(muxer *http.ServeMux, as *utils.AppState) {
	type CreateEventReqBody struct {
		Title                string `json:"title"`
		Description          string `json:"description"`
		Location             string `json:"location"`
		StartDateUnixUTC     int64  `json:"startDateUnixUTC"`
		EndDateUnixUTC       int64  `json:"endDateUnixUTC"`
		AllDay               bool   `json:"allDay"`
		ParticipantsCategory string `json:"participantsCategory"`
	}

	// propose a new event; the success response is the event ID. The form
	// rules live here: the store itself stores whatever it is given.
	muxer.HandleFunc("POST /calendar/create-event", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			var reqBody CreateEventReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			reqBody.Title = utils.CleanupString(reqBody.Title)
			switch {
			case reqBody.Title == "":
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide a title"))
				return
			case reqBody.StartDateUnixUTC == 0 || reqBody.EndDateUnixUTC == 0:
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide a start date and end date"))
				return
			case reqBody.EndDateUnixUTC < reqBody.StartDateUnixUTC:
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("End date must not be before start date"))
				return
			}

			eventID, err := as.Store.CreateEvent(r.Context(), store.EventDraft{
				Title:                reqBody.Title,
				Description:          reqBody.Description,
				Location:             reqBody.Location,
				Start:                time.Unix(reqBody.StartDateUnixUTC, 0),
				End:                  time.Unix(reqBody.EndDateUnixUTC, 0),
				AllDay:               reqBody.AllDay,
				ParticipantsCategory: reqBody.ParticipantsCategory,
			})
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't create event"))
				slog.Error("can't create event", "error", err)
				return
			}

			notifyProposed(r, as, eventID)

			respBodyJson, err := json.Marshal(map[string]string{"id": eventID})
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	type UpdateEventStatusReqBody struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}

	// approve or reject; an unknown id is a no-op by design
	muxer.HandleFunc("POST /calendar/update-event-status", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			var reqBody UpdateEventStatusReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			if reqBody.ID == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide an event ID"))
				return
			}
			status, err := model.ParseEventStatus(reqBody.Status)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid status"))
				return
			}

			if err := as.Store.UpdateEventStatus(r.Context(), reqBody.ID, status); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't update event status"))
				slog.Error("can't update event status", "error", err)
				return
			}

			notifyDecided(r, as, reqBody.ID)

			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))
		}))

	type DeleteEventReqBody struct {
		ID string `json:"id"`
	}

	// remove an event for good, typically the creator cleaning up after a
	// rejection; an unknown id is a no-op by design
	muxer.HandleFunc("POST /calendar/delete-event", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			var reqBody DeleteEventReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}
			if reqBody.ID == "" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Please provide an event ID"))
				return
			}

			if err := as.Store.DeleteEvent(r.Context(), reqBody.ID); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't delete event"))
				slog.Error("can't delete event", "error", err)
				return
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))
		}))
}

func notifyProposed(r *http.Request, as *utils.AppState, eventID string) {
	if !as.Notifier.Enabled() {
		return
	}
	event := new(model.Event)
	if err := as.BunDB.NewSelect().
		Model(event).
		Relation("CreatedBy").
		Where("event.id = ?", eventID).
		Scan(r.Context()); err != nil {
		slog.Error("can't load event for notification", "event", eventID, "error", err)
		return
	}
	as.Notifier.EventProposed(event)
}

func notifyDecided(r *http.Request, as *utils.AppState, eventID string) {
	if !as.Notifier.Enabled() {
		return
	}
	event := new(model.Event)
	if err := as.BunDB.NewSelect().
		Model(event).
		Relation("CreatedBy").
		Where("event.id = ?", eventID).
		Scan(r.Context()); err != nil {
		// the update may have been a no-op on a missing id
		slog.Debug("no event to notify about", "event", eventID, "error", err)
		return
	}
	as.Notifier.EventDecided(event, as.Store.ActiveUser())
}
