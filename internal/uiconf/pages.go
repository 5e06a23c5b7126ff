package uiconf

import (
	"fmt"

	"github.com/bsglauncher/webui/internal/domain"
)

// DefaultBranch is the branch whose page artwork is used when a branch has
// none of its own.
const DefaultBranch = "default"

// Page keys.
const (
	PageMain     = "main"
	PageNews     = "news"
	PageNewsItem = "news_item"
	PageSettings = "settings"
	PageETS      = "ets"
)

// PageParam positions a page's background artwork.
type PageParam struct {
	ID     string `json:"id"`
	ImgPos string `json:"imgPos"`
	Img    string `json:"img"`
}

// GamePages is the per-game page table plus social links.
type GamePages struct {
	Branches    map[string]map[string]PageParam `json:"branch"`
	VKGroupID   int64                           `json:"vk_group_id"`
	TwitterLink string                          `json:"tw_link"`
}

func branchPages(main, news, settings, ets string) map[string]PageParam {
	return map[string]PageParam{
		PageMain:     {ID: "main_content", ImgPos: "center top", Img: main},
		PageNews:     {ID: "news_content", ImgPos: "right top", Img: news},
		PageNewsItem: {ID: "news_content", ImgPos: "right top", Img: news},
		PageSettings: {ID: "settings_content", ImgPos: "right top", Img: settings},
		PageETS:      {ID: "ets_content", ImgPos: "right top", Img: ets},
	}
}

var pageParams = map[string]GamePages{
	domain.GameEFT: {
		Branches: map[string]map[string]PageParam{
			DefaultBranch: branchPages("img/main_art.jpg", "img/news_art.jpg", "img/settings_art.jpg", "img/settings_art_ets.jpg"),
			"ets":         branchPages("img/main_art_ets.jpg", "img/news_art_ets.jpg", "img/settings_art_ets.jpg", "img/settings_art_ets.jpg"),
			"tournament":  branchPages("img/main_art_tournament.jpg", "img/news_art_tournament.jpg", "img/settings_art_tournament.jpg", "img/settings_art_tournament.jpg"),
		},
		VKGroupID:   89771130,
		TwitterLink: "https://twitter.com/bstategames?ref_src=twsrc%5Etfw",
	},
	"arena": {
		Branches: map[string]map[string]PageParam{
			DefaultBranch: {
				PageMain:     {ID: "main_content", ImgPos: "center 1px", Img: "img/arena_art.jpg"},
				PageNews:     {ID: "news_content", ImgPos: "right top", Img: "img/settings_art_arena.jpg"},
				PageNewsItem: {ID: "news_content", ImgPos: "right top", Img: "img/news_art.jpg"},
				PageSettings: {ID: "settings_content", ImgPos: "right top", Img: "img/settings_art_arena.jpg"},
				PageETS:      {ID: "ets_content", ImgPos: "right top", Img: "img/settings_art_ets.jpg"},
			},
		},
		VKGroupID:   218983927,
		TwitterLink: "https://twitter.com/tarkovarena",
	},
}

// Page returns the artwork for a page of a game branch. A branch without its
// own table uses the default branch.
func Page(game, branch, page string) (PageParam, error) {
	gp, ok := pageParams[game]
	if !ok {
		return PageParam{}, domain.ErrNotFound("game", game)
	}
	pages, ok := gp.Branches[branch]
	if !ok {
		pages = gp.Branches[DefaultBranch]
	}
	p, ok := pages[page]
	if !ok {
		return PageParam{}, domain.ErrNotFound("page", fmt.Sprintf("%s/%s/%s", game, branch, page))
	}
	return p, nil
}

// Game returns the page table of a game.
func Game(game string) (GamePages, bool) {
	gp, ok := pageParams[game]
	return gp, ok
}
