package route

import (
	"encoding/json"
	"famcal/src-server/filter"
	"famcal/src-server/model"
	"famcal/src-server/utils"
	"log/slog"
	"net/http"
)

type OneEventRespBody struct {
	ID                   string `json:"id"`
	Title                string `json:"title"`
	Description          string `json:"description,omitempty"`
	Location             string `json:"location,omitempty"`
	StartDateUnixUTC     int64  `json:"startDateUnixUTC"`
	EndDateUnixUTC       int64  `json:"endDateUnixUTC"`
	AllDay               bool   `json:"allDay"`
	ParticipantsCategory string `json:"participantsCategory,omitempty"`
	CreatedByID          string `json:"createdById"`
	CreatedByName        string `json:"createdByName"`
	Status               string `json:"status"`
}

func eventsToRespBody(events []model.Event) []OneEventRespBody {
	respBody := make([]OneEventRespBody, 0, len(events))
	for _, event := range events {
		respBody = append(respBody, OneEventRespBody{
			ID:                   event.ID,
			Title:                event.Title,
			Description:          event.Description,
			Location:             event.Location,
			StartDateUnixUTC:     event.StartDateUnixUTC,
			EndDateUnixUTC:       event.EndDateUnixUTC,
			AllDay:               event.AllDay,
			ParticipantsCategory: event.ParticipantsCategory,
			CreatedByID:          event.CreatedByID,
			CreatedByName:        event.CreatorName(),
			Status:               string(event.Status),
		})
	}
	return respBody
}

func Calendar(muxer *http.ServeMux, as *utils.AppState) {
	// approved events for one calendar day, what the month grid and the
	// day list render
	muxer.HandleFunc("GET /calendar/day", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			day, err := parseDateParam(as, r.URL.Query().Get("date"))
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid date"))
				return
			}

			events, err := as.Store.EventsForDate(r.Context(), day)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get events"))
				slog.Error("can't get events for date", "error", err)
				return
			}

			respBodyJson, err := json.Marshal(eventsToRespBody(events))
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	// the general filtered query behind every list screen
	muxer.HandleFunc("GET /calendar/events", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			query := r.URL.Query()

			var opts filter.Options

			if raw := query.Get("status"); raw != "" {
				status, err := model.ParseEventStatus(raw)
				if err != nil {
					w.WriteHeader(http.StatusBadRequest)
					w.Write([]byte("Invalid status"))
					return
				}
				opts.Status = status
			}

			viewMode, ok := filter.ParseViewMode(query.Get("view"))
			if !ok {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid view mode, want day, week or month"))
				return
			}
			opts.ViewMode = viewMode

			if raw := query.Get("date"); raw != "" {
				date, err := parseDateParam(as, raw)
				if err != nil {
					w.WriteHeader(http.StatusBadRequest)
					w.Write([]byte("Invalid date"))
					return
				}
				opts.Date = date
			}

			if raw := query.Get("day"); raw != "" {
				day, err := parseDateParam(as, raw)
				if err != nil {
					w.WriteHeader(http.StatusBadRequest)
					w.Write([]byte("Invalid day"))
					return
				}
				opts.SpecificDay = day
			}

			// mine=true / mine=false are shorthands relative to the
			// active user, the way the notification screens query
			switch query.Get("mine") {
			case "true":
				opts.CreatedByUserID = as.Store.ActiveUser().ID
			case "false":
				opts.NotCreatedByUserID = as.Store.ActiveUser().ID
			case "":
				opts.CreatedByUserID = query.Get("createdBy")
				opts.NotCreatedByUserID = query.Get("notCreatedBy")
			default:
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid mine param, want true or false"))
				return
			}

			events, err := as.Store.EventsFiltered(r.Context(), opts)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't get events"))
				slog.Error("can't get filtered events", "error", err)
				return
			}

			respBodyJson, err := json.Marshal(eventsToRespBody(events))
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))
}
