// internal/app/features/shared/links/links.go
//
// Package links builds the public URLs of governance records so every
// feature links to a page the same way its router serves it.
package links

import (
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func Groups() string { return "/groups" }

func Group(slug string) string { return "/groups/" + slug }

func Meetings(groupSlug string) string { return Group(groupSlug) + "/meetings" }

func MeetingsYear(groupSlug string, year int) string {
	return Meetings(groupSlug) + "/" + strconv.Itoa(year)
}

// Meeting is the page of the meeting a group held in start's month.
func Meeting(groupSlug string, start time.Time) string {
	return fmt.Sprintf("%s/%d/%d", Meetings(groupSlug), start.Year(), int(start.Month()))
}

func MeetingPrint(groupSlug string, start time.Time) string {
	return Meeting(groupSlug, start) + "/print"
}

func Minutes(groupSlug string, start time.Time) string {
	return Meeting(groupSlug, start) + "/minutes"
}

// Office is the page of an office's latest term.
func Office(groupSlug, officeSlug string) string {
	return Group(groupSlug) + "/officers/" + officeSlug
}

// OfficeTerm is the page of the office's term starting in start's year.
func OfficeTerm(groupSlug, officeSlug string, start time.Time) string {
	return Office(groupSlug, officeSlug) + "/" + strconv.Itoa(start.Year())
}

func Person(slug string) string { return "/people/" + slug }

func Bylaws(slug string) string { return "/bylaws/" + slug }

func Attachment(id primitive.ObjectID) string { return "/attachments/" + id.Hex() }
