// Package onimo embeds the onimo fact-answering assistant in a Go program.
//
// The assistant classifies a query, extracts a keyword, races an
// encyclopedia lookup against a news lookup and replies in the session
// language (English or Bangla).
//
//	client, _ := onimo.New(ctx, onimo.WithGoogleNews("US"))
//	defer client.Close()
//
//	resp := client.Ask(ctx, "who is the president of Bangladesh")
//	fmt.Println(resp.Status, resp.Summary, resp.Source)
//
//	client.Ask(ctx, "talk bangla")      // status language_changed
//	resp = client.FactCheckVideo(ctx, "https://youtu.be/dQw4w9WgXcQ")
//
// Every call returns a Response; failures are reported through its Status,
// never as a Go error.
package onimo
