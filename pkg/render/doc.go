// Package render groups the stages that turn a timeline into a picture.
//
//   - [layout]: pure collision resolution over label rectangles
//   - [measure]: text extents in plot coordinates for a given viewport
//   - [sink]: scene assembly and the SVG, PNG and JSON writers
//
// Layout never draws and sinks never move labels; [sink.NewScene] runs
// measurement and layout once and every writer renders the same scene.
package render
