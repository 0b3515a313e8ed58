package fixture

import "freee-timecard/internal/domain/entity"

const (
	BaseURL  = "https://timecard.fixture.test"
	EntryURL = BaseURL + "/hr/"
	LoginURL = BaseURL + "/login"
	HomeURL  = BaseURL + "/home"
)

// DoneURL is where the navigation button for action leads.
func DoneURL(a entity.Action) string {
	return BaseURL + "/done/" + a.String()
}

// FreeeSite returns the production site profile pointed at EntryURL.
func FreeeSite() entity.Site {
	site := entity.FreeeHR
	site.EntryURL = EntryURL
	return site
}

// FreeePages mirrors the parts of the freee HR markup the punch flow touches.
func FreeePages() map[string]string {
	pages := map[string]string{
		EntryURL: `<!DOCTYPE html>
<html>
<head><title>freee人事労務</title></head>
<body>
<div id="gatsby-focus-wrapper">
  <header>
    <div class="g-header_inner">
      <div>
        <div class="g-headerBtn">
          <a href="/trial">無料で試す</a>
          <a href="/login">ログインする</a>
        </div>
      </div>
    </div>
  </header>
  <main><a href="/login">ログインする</a></main>
</div>
</body>
</html>`,
		LoginURL: `<!DOCTYPE html>
<html>
<body>
  <form action="/home" method="post">
    <input name="email" type="email" />
    <input name="password" type="password" />
  </form>
</body>
</html>`,
		HomeURL: `<!DOCTYPE html>
<html>
<body>
  <button data-href="/wrong">出勤 (ヘルプ)</button>
  <div id="global-navigation-body-block">
    <button data-href="/done/clock-in">出勤</button>
    <button data-href="/done/break-start">休憩開始</button>
    <button data-href="/done/break-end">休憩終了</button>
    <button data-href="/done/clock-out">退勤</button>
  </div>
</body>
</html>`,
	}
	for _, a := range entity.Actions() {
		pages[DoneURL(a)] = `<!DOCTYPE html><html><body><p>打刻しました</p></body></html>`
	}
	return pages
}
