package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"

	"nationwide/internal/client"
	"nationwide/internal/dto"
	"nationwide/internal/models"
)

func (cli *commandLine) achievements(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	switch args[0] {
	case "list":
		listCmd := flag.NewFlagSet("achievements list", flag.ContinueOnError)
		listCmd.SetOutput(cli.out)
		page := listCmd.Int("page", 1, "Page number.")
		limit := listCmd.Int("limit", 12, "Records per page.")
		name := listCmd.String("name", "", "Filter by title or student name.")
		if err := listCmd.Parse(args[1:]); err != nil {
			return errHelp
		}

		res, err := cli.api.ListAchievements(ctx, dto.AdminAchievementQuery{Page: *page, Limit: *limit, Name: *name})
		if err != nil {
			return err
		}
		list := client.NewAchievementList(res.Achievements)
		w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tSTUDENT\tTITLE")
		for _, a := range list.Items() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Date.Format("2006-01-02"), a.StudentName, a.Title)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Page %d of %d, %d achievements\n", res.CurrentPage, res.TotalPages, res.TotalAchievements)
		return nil

	case "create", "update":
		editCmd := flag.NewFlagSet("achievements "+args[0], flag.ContinueOnError)
		editCmd.SetOutput(cli.out)
		id := editCmd.String("id", "", "Achievement ID (update only).")
		title := editCmd.String("title", "", "Title.")
		description := editCmd.String("description", "", "Description.")
		student := editCmd.String("student", "", "Student name.")
		date := editCmd.String("date", "", "Date as YYYY-MM-DD.")
		photoPath := editCmd.String("photo", "", "Photo file.")
		if err := editCmd.Parse(args[1:]); err != nil {
			return errHelp
		}
		if args[0] == "update" && *id == "" {
			editCmd.Usage()
			return errHelp
		}

		photo, closer, err := openOptional(*photoPath)
		if err != nil {
			return err
		}
		defer closeQuietly(closer)

		in := client.AchievementInput{Title: *title, Description: *description, StudentName: *student, Date: *date, Photo: photo}
		var progress client.ProgressFunc
		if photo != nil {
			progress = cli.progress(photo.Name)
		}
		if args[0] == "create" {
			a, err := cli.api.CreateAchievement(ctx, in, progress)
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "Created achievement %s\n", a.ID)
			return nil
		}
		a, err := cli.api.UpdateAchievement(ctx, *id, in, progress)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Updated achievement %s\n", a.ID)
		return nil

	case "delete":
		deleteCmd := flag.NewFlagSet("achievements delete", flag.ContinueOnError)
		deleteCmd.SetOutput(cli.out)
		id := deleteCmd.String("id", "", "Achievement ID.")
		if err := deleteCmd.Parse(args[1:]); err != nil || *id == "" {
			deleteCmd.Usage()
			return errHelp
		}
		if err := cli.api.DeleteAchievement(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Deleted achievement %s\n", *id)
		return nil
	}

	cli.printUsage()
	return errHelp
}

func (cli *commandLine) videos(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	switch args[0] {
	case "list":
		videos, err := cli.api.ListVideos(ctx)
		if err != nil {
			return err
		}
		list := client.NewVideoList(videos)
		w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tORDER\tACTIVE\tCOURSE\tTITLE")
		for _, v := range list.Items() {
			fmt.Fprintf(w, "%s\t%d\t%t\t%s\t%s\n", v.ID, v.Order, v.IsActive, v.CourseName, v.Title)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%d of %d videos\n", list.Len(), models.MaxLiveVideos)
		return nil

	case "upload":
		uploadCmd := flag.NewFlagSet("videos upload", flag.ContinueOnError)
		uploadCmd.SetOutput(cli.out)
		path := uploadCmd.String("file", "", "Video file, at most 50MB.")
		title := uploadCmd.String("title", "", "Title.")
		course := uploadCmd.String("course", "", "Course name.")
		description := uploadCmd.String("description", "", "Description.")
		if err := uploadCmd.Parse(args[1:]); err != nil || *path == "" {
			uploadCmd.Usage()
			return errHelp
		}

		existing, err := cli.api.ListVideos(ctx)
		if err != nil {
			return err
		}
		file, closer, err := client.OpenFile(*path)
		if err != nil {
			return err
		}
		defer closeQuietly(closer)

		v, err := cli.api.UploadVideo(ctx, client.NewVideoList(existing), client.VideoInput{
			Title:       *title,
			Description: *description,
			CourseName:  *course,
			File:        file,
		}, cli.progress(file.Name))
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Uploaded video %s\n", v.ID)
		return nil

	case "update":
		updateCmd := flag.NewFlagSet("videos update", flag.ContinueOnError)
		updateCmd.SetOutput(cli.out)
		id := updateCmd.String("id", "", "Video ID.")
		title := updateCmd.String("title", "", "Title.")
		course := updateCmd.String("course", "", "Course name.")
		description := updateCmd.String("description", "", "Description.")
		order := updateCmd.String("order", "", "Display order.")
		active := updateCmd.String("active", "", "Show on the public site (true or false).")
		path := updateCmd.String("file", "", "Replacement video file.")
		if err := updateCmd.Parse(args[1:]); err != nil || *id == "" {
			updateCmd.Usage()
			return errHelp
		}

		var upd dto.VideoUpdate
		set := map[string]bool{}
		updateCmd.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if set["title"] {
			upd.Title = title
		}
		if set["course"] {
			upd.CourseName = course
		}
		if set["description"] {
			upd.Description = description
		}
		if set["order"] {
			n, err := strconv.Atoi(*order)
			if err != nil {
				return fmt.Errorf("order must be a number (got '%s')", *order)
			}
			upd.Order = &n
		}
		if set["active"] {
			b, err := strconv.ParseBool(*active)
			if err != nil {
				return fmt.Errorf("active must be true or false (got '%s')", *active)
			}
			upd.IsActive = &b
		}

		if *path != "" {
			file, closer, err := client.OpenFile(*path)
			if err != nil {
				return err
			}
			defer closeQuietly(closer)
			if _, err := cli.api.ReplaceVideoFile(ctx, *id, file, cli.progress(file.Name)); err != nil {
				return err
			}
		}
		v, err := cli.api.UpdateVideo(ctx, *id, upd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Updated video %s\n", v.ID)
		return nil

	case "delete":
		deleteCmd := flag.NewFlagSet("videos delete", flag.ContinueOnError)
		deleteCmd.SetOutput(cli.out)
		id := deleteCmd.String("id", "", "Video ID.")
		if err := deleteCmd.Parse(args[1:]); err != nil || *id == "" {
			deleteCmd.Usage()
			return errHelp
		}
		if err := cli.api.DeleteVideo(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Deleted video %s\n", *id)
		return nil
	}

	cli.printUsage()
	return errHelp
}
