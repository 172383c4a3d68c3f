// Package mlt builds MLT XML timeline documents, the project format of
// Shotcut and the melt command line player.
//
// A document windows one source file: every chunk gets its own chain over
// the full-length resource, and the playlist entry's in/out attributes
// select the chunk's span from it.
package mlt

import "encoding/xml"

// Version is the MLT document version written to the root element.
const Version = "7.27.0"

// Fixed element identifiers. The chunk chains are "chain0", "chain1", ...
const (
	MainBinID    = "main_bin"
	BlackID      = "black"
	BackgroundID = "background"
	PlaylistID   = "playlist0"
	TractorID    = "tractor0"
)

// Profile describes the video format of the project.
type Profile struct {
	Width            int `xml:"width,attr"`
	Height           int `xml:"height,attr"`
	Progressive      int `xml:"progressive,attr"`
	SampleAspectNum  int `xml:"sample_aspect_num,attr"`
	SampleAspectDen  int `xml:"sample_aspect_den,attr"`
	DisplayAspectNum int `xml:"display_aspect_num,attr"`
	DisplayAspectDen int `xml:"display_aspect_den,attr"`
	FrameRateNum     int `xml:"frame_rate_num,attr"`
	FrameRateDen     int `xml:"frame_rate_den,attr"`
	Colorspace       int `xml:"colorspace,attr"`
}

// DefaultProfile is 1440p at 60 fps, BT.709.
var DefaultProfile = Profile{
	Width:            2560,
	Height:           1440,
	Progressive:      1,
	SampleAspectNum:  1,
	SampleAspectDen:  1,
	DisplayAspectNum: 16,
	DisplayAspectDen: 9,
	FrameRateNum:     60000000,
	FrameRateDen:     1000000,
	Colorspace:       709,
}

// Property is a named value attached to a service.
type Property struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Producer is a plain MLT producer; here only the black background.
type Producer struct {
	ID         string     `xml:"id,attr"`
	In         string     `xml:"in,attr"`
	Out        string     `xml:"out,attr"`
	Properties []Property `xml:"property"`
}

// Chain is a producer with a link chain; Shotcut uses it for media clips.
type Chain struct {
	ID         string     `xml:"id,attr"`
	In         string     `xml:"in,attr"`
	Out        string     `xml:"out,attr"`
	Properties []Property `xml:"property"`
}

// Entry places a window of a producer or chain on a playlist.
type Entry struct {
	Producer string `xml:"producer,attr"`
	In       string `xml:"in,attr"`
	Out      string `xml:"out,attr"`
}

// Playlist is an ordered sequence of entries.
type Playlist struct {
	ID         string     `xml:"id,attr"`
	Properties []Property `xml:"property"`
	Entries    []Entry    `xml:"entry"`
}

// Track binds a playlist into a tractor.
type Track struct {
	Producer string `xml:"producer,attr"`
}

// Tractor combines tracks into the project timeline.
type Tractor struct {
	ID         string     `xml:"id,attr"`
	In         string     `xml:"in,attr"`
	Out        string     `xml:"out,attr"`
	Properties []Property `xml:"property"`
	Tracks     []Track    `xml:"track"`
}

// Document is a complete MLT project. Build produces it; it is not meant
// to be edited afterwards.
type Document struct {
	Profile    Profile
	MainBin    Playlist
	Black      Producer
	Background Playlist
	Chains     []Chain
	Playlist   Playlist
	Tractor    Tractor
}

// MarshalXML writes the root element and its children in the order MLT
// expects: a service must be defined before anything references it.
func (d *Document) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	root := xml.StartElement{
		Name: xml.Name{Local: "mlt"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "LC_NUMERIC"}, Value: "C"},
			{Name: xml.Name{Local: "version"}, Value: Version},
			{Name: xml.Name{Local: "producer"}, Value: MainBinID},
		},
	}
	if err := e.EncodeToken(root); err != nil {
		return err
	}

	children := []element{
		{"profile", d.Profile},
		{"playlist", d.MainBin},
		{"producer", d.Black},
		{"playlist", d.Background},
	}
	for _, c := range d.Chains {
		children = append(children, element{"chain", c})
	}
	children = append(children,
		element{"playlist", d.Playlist},
		element{"tractor", d.Tractor},
	)

	for _, c := range children {
		if err := e.EncodeElement(c.v, xml.StartElement{Name: xml.Name{Local: c.name}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(root.End())
}

// element is one child of the root in document order.
type element struct {
	name string
	v    any
}
