package handler

import "net/http"

const statusPage = `<h1 style="font-family: Arial;">Server is running!</h1>`

func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(statusPage))
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}
