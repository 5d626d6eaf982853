// Reelpick - Streaming Content Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelpick

package tmdb

// genreNames maps TMDB genre IDs to their fr-FR labels. The catalog stores
// genres under these labels, so affinity built from TMDB lookups lines up
// with candidate genres even when a response omits a name.
var genreNames = map[int]string{
	28:    "Action",
	12:    "Aventure",
	16:    "Animation",
	35:    "Comédie",
	80:    "Crime",
	99:    "Documentaire",
	18:    "Drame",
	10751: "Famille",
	14:    "Fantastique",
	36:    "Histoire",
	27:    "Horreur",
	10402: "Musique",
	9648:  "Mystère",
	10749: "Romance",
	878:   "Science-Fiction",
	10770: "Téléfilm",
	53:    "Thriller",
	10752: "Guerre",
	37:    "Western",

	// Series-only genres
	10759: "Action & Aventure",
	10762: "Enfants",
	10763: "Actualités",
	10764: "Téléréalité",
	10765: "Sci-Fi & Fantasy",
	10766: "Feuilleton",
	10767: "Talk-show",
	10768: "Guerre & Politique",
}

// GenreName returns the label for a TMDB genre ID.
func GenreName(id int) (string, bool) {
	name, ok := genreNames[id]
	return name, ok
}
