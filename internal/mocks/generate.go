package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Fetcher --dir ../domain/results --output domain/results --outpkg resultsmock --filename fetcher_mock.go
