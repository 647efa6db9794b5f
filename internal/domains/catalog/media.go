package catalog

import (
	"net/http"

	"kitabcloud-admin/internal/domains/entity"
)

func videos() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "videos",
		Singular:    "Video",
		Plural:      "Videos",
		Description: "Video content",
		Fields: []entity.Field{
			{Name: "title", Label: "Video Title", Kind: entity.KindText, Required: true, Message: "Title is required"},
			description(),
			{Name: "video_url", Label: "Video URL", Kind: entity.KindText},
			{Name: "thumbnail", Label: "Thumbnail", Kind: entity.KindFile, Accept: "image/*"},
			{Name: "duration", Label: "Duration", Kind: entity.KindText},
			statusSwitch(),
		},
		Columns: []entity.Column{
			idColumn(),
			entity.Text("title", "Video Title"),
			entity.Text("duration", "Duration"),
			entity.Text("video_url", "URL"),
			createdColumn(),
			statusColumn(),
		},
		StatusField: "status",
	}
}

func podcasts() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "podcasts",
		Singular:    "Podcast",
		Plural:      "Podcasts",
		Description: "Podcast shows",
		Fields: []entity.Field{
			{Name: "name", Label: "Podcast Name", Kind: entity.KindText, Required: true, Message: "Name is required"},
			description(),
			{Name: "cover_image", Label: "Cover Image", Kind: entity.KindFile, Accept: "image/*"},
			{
				Name:        "author_id",
				Label:       "Author",
				Kind:        entity.KindSelect,
				OptionsFrom: &entity.OptionSource{Resource: "authors"},
			},
			statusSwitch(),
		},
		Columns: []entity.Column{
			idColumn(),
			entity.Text("name", "Podcast Name"),
			entity.Relation("author", "Author", "author.name"),
			createdColumn(),
			statusColumn(),
		},
		StatusField: "status",
	}
}

func episodes() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "episodes",
		Singular:    "Episode",
		Plural:      "Episodes",
		Description: "Podcast episodes",
		Columns: []entity.Column{
			entity.Text("id", "Sr No"),
			entity.Text("title", "Title"),
			entity.Text("podcast_name", "Podcast"),
			entity.Text("duration", "Duration"),
			entity.Text("audio_file", "Audio File"),
			entity.Date("release_date", "Release Date"),
			statusColumn(),
		},
		StatusField:  "status",
		StatusMethod: http.MethodPatch,
		ReadOnly:     true,
	}
}

func backgroundImages() *entity.Descriptor {
	return &entity.Descriptor{
		Name:        "background-images",
		Singular:    "Background Image",
		Plural:      "Background Images",
		Description: "App background artwork",
		Columns: []entity.Column{
			entity.Text("id", "Sr No"),
			entity.Text("title", "Title"),
			entity.Text("description", "Description"),
			entity.Text("image", "Image"),
			statusColumn(),
		},
		StatusField:  "status",
		StatusMethod: http.MethodPatch,
		ReadOnly:     true,
	}
}
