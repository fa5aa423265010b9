package handler

import "net/url"

// Link relation and profile locations. The apiary site hosts the human
// readable documentation both redirect resources point at.
const (
	linkRelationsURL = "/gamescoreservice/link-relations/"
	apiaryURL        = "https://gamescoreservice.docs.apiary.io/#reference/"

	gameProfile   = "/profiles/game/"
	levelProfile  = "/profiles/level/"
	scoreProfile  = "/profiles/score/"
	playerProfile = "/profiles/player/"
	errorProfile  = "/profiles/error/"
)

// Canonical URL builders. Natural keys may contain spaces, so every
// segment is escaped on the way out.
func gamesURL() string {
	return "/games/"
}

func gameURL(game string) string {
	return "/games/" + url.PathEscape(game) + "/"
}

func levelURL(game, level string) string {
	return "/games/" + url.PathEscape(game) + "/" + url.PathEscape(level) + "/"
}

func scoreURL(game, level, player string) string {
	return "/games/" + url.PathEscape(game) + "/" + url.PathEscape(level) + "/" + url.PathEscape(player) + "/"
}

func playersURL() string {
	return "/players/"
}

func playerURL(player string) string {
	return "/players/" + url.PathEscape(player) + "/"
}

func scoresByURL(player string) string {
	return "/players/" + url.PathEscape(player) + "/scores/"
}
