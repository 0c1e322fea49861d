package route

import (
	"encoding/json"
	"famcal/src-server/utils"
	"net/http"
)

func User(muxer *http.ServeMux, as *utils.AppState) {
	type UserRespBody struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	muxer.HandleFunc("GET /user/current", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			activeUser := as.Store.ActiveUser()
			respBodyJson, err := json.Marshal(UserRespBody{
				ID:   activeUser.ID,
				Name: activeUser.Name,
			})
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))

	type SwitchUserReqBody struct {
		UserKey string `json:"userKey"`
	}

	// an unknown key falls back to the default user rather than failing;
	// the response is whoever ended up active
	muxer.HandleFunc("POST /user/switch", LogMiddleware(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			var reqBody SwitchUserReqBody
			if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Invalid request body"))
				return
			}

			as.Store.SwitchActiveUser(reqBody.UserKey)

			activeUser := as.Store.ActiveUser()
			respBodyJson, err := json.Marshal(UserRespBody{
				ID:   activeUser.ID,
				Name: activeUser.Name,
			})
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("Can't marshal response body"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write(respBodyJson)
		}))
}
