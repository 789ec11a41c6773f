package file

import (
	"file-manager-api/internal/domain/file"
)

func ToResponseFile(fDomain file.File) File {
	var f = File{
		ID:           fDomain.UUID,
		StorageName:  fDomain.StorageName,
		OriginalName: fDomain.OriginalName,
		URL:          fDomain.URL,
		Size:         fDomain.SizeBytes,
		FileType:     fDomain.MimeType,
		UploadDate:   fDomain.UploadedAt,
		UserID:       fDomain.UserID,
	}

	return f
}

func ToResponseFiles(fsDomain file.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}

func ToUploadedFile(fDomain file.File) Uploaded {
	var u = Uploaded{
		ID:           fDomain.UUID,
		OriginalName: fDomain.OriginalName,
		URL:          fDomain.URL,
		Size:         fDomain.SizeBytes,
		FileType:     fDomain.MimeType,
		UploadDate:   fDomain.UploadedAt,
	}

	return u
}

func ToUploadedFiles(fsDomain file.Files) Uploadeds {
	us := make(Uploadeds, len(fsDomain))
	for idx, f := range fsDomain {
		us[idx] = ToUploadedFile(*f)
	}

	return us
}

func ToUploadFailures(errsDomain []file.UploadError) UploadFailures {
	fails := make(UploadFailures, len(errsDomain))
	for idx, e := range errsDomain {
		fails[idx] = UploadFailure{Filename: e.Filename, Error: e.Reason}
	}

	return fails
}

func ToResponsePagination(pDomain file.Pagination) Pagination {
	return Pagination{
		Page:  pDomain.Page,
		Limit: pDomain.Limit,
		Total: pDomain.Total,
		Pages: pDomain.Pages,
	}
}
