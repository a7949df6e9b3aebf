package main

import (
	"log"
	"net/http"
	"time"

	"github.com/aniladanir/looper"
)

func main() {
	var resp *http.Response

	l, err := looper.UntilSuccessOrLimit(10,
		looper.WithTimeout(time.Second*30),
		looper.WithAction(func(s looper.State) error {
			r, err := http.DefaultClient.Get("https://www.google.com")
			if err != nil {
				log.Printf("attempt %d failed: %v", s.Attempts(), err)
				return nil
			}
			resp = r
			return nil
		}),
		looper.WithTest(func(looper.State) bool {
			return resp != nil && resp.StatusCode == http.StatusOK
		}),
		looper.WithOnSomeSuccessful(func(s looper.State) {
			log.Printf("request succeeded after %d attempts in %s", s.Attempts(), s.Elapsed())
		}),
		looper.WithOnAllFailed(func(s looper.State) {
			log.Printf("request failed after %d attempts", s.Attempts())
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := l.Run(); err != nil {
		log.Fatalf("request has failed: %v", err)
	}
}
