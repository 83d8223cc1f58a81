package types

type MenuItem struct {
	Label  string
	Path   string
	Active bool
}

type MenuSetter interface {
	SetMenu(items []MenuItem)
}

type FlashSetter interface {
	SetFlash(notice string)
}

type BasePageData struct {
	Title  string
	Menu   []MenuItem
	Notice string
	Error  string
}

func (d *BasePageData) SetMenu(items []MenuItem) {
	d.Menu = items
}

func (d *BasePageData) SetFlash(notice string) {
	if d.Notice == "" {
		d.Notice = notice
	}
}

type TableCount struct {
	Table string
	Rows  int64
}
